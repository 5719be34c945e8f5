package signals

// CategoryRule maps a category name to the substrings that trigger it.
// Declaration order is significant: it breaks ties when picking primary
// categories and orders the flags in preference analysis.
type CategoryRule struct {
	Name     string
	Triggers []string
}

// Vocabulary holds the closed word lists driving extraction and scoring.
// It is injected into the extractor so tests can run with alternate lists;
// treat instances as immutable after construction.
type Vocabulary struct {
	// Tools are matched by substring containment, not word boundaries.
	// Short entries like "ar" and "xd" will match inside unrelated words;
	// that imprecision is part of the contract and must not be "fixed".
	Tools []string

	// Stopwords are dropped during text preprocessing.
	Stopwords map[string]struct{}

	// Categories is the weighted taxonomy used for profile extraction.
	Categories []CategoryRule

	// PreferenceCategories is the binary taxonomy used when analyzing a
	// preference text. It deliberately differs from Categories in a few
	// triggers (e.g. "sculptor", "2d animation").
	PreferenceCategories []CategoryRule

	// QualityMarkers flag portfolio entries that indicate recognition.
	QualityMarkers []string
}

// DefaultVocabulary returns the built-in digital art vocabulary.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Tools: []string{
			"procreate", "photoshop", "illustrator", "after effects", "premiere", "indesign",
			"blender", "zbrush", "substance painter", "maya", "3ds max", "cinema 4d", "c4d",
			"lightroom", "capture one", "figma", "sketch", "xd", "clip studio", "toonboom",
			"spine", "unity", "unreal", "touchdesigner", "resolume", "ableton", "ar", "vr",
			"spark ar", "lens studio", "nft", "v-ray", "vray",
		},
		Stopwords: newStopwords(
			"a", "an", "the", "and", "but", "or", "for", "nor", "on", "at", "to", "by", "in",
			"of", "with", "about", "against", "between", "into", "through", "during", "before",
			"after", "above", "below", "from", "up", "down", "is", "are", "was", "were", "be",
			"been", "being", "have", "has", "had", "having", "do", "does", "did", "doing",
			"this", "that", "these", "those", "i", "you", "he", "she", "it", "we", "they",
			"their", "his", "her", "its", "our", "which", "who", "whom", "whose",
			"what", "why", "where", "when", "how", "need", "want", "looking",
		),
		Categories: []CategoryRule{
			{Name: "illustration", Triggers: []string{"illustration", "illustrator", "illustrate"}},
			{Name: "animation", Triggers: []string{"animation", "animator", "animate"}},
			{Name: "3d", Triggers: []string{"3d", "blender", "zbrush", "maya", "substance", "model"}},
			{Name: "photography", Triggers: []string{"photo", "photography", "photographer"}},
			{Name: "ui/ux", Triggers: []string{"ui", "ux", "interface", "figma", "sketch", "xd"}},
			{Name: "concept art", Triggers: []string{"concept art", "concept artist"}},
			{Name: "mural", Triggers: []string{"mural", "street art"}},
			{Name: "nft", Triggers: []string{"nft", "blockchain", "crypto"}},
			{Name: "ar/vr", Triggers: []string{"ar", "vr", "augmented", "virtual", "filter"}},
			{Name: "motion graphics", Triggers: []string{"motion", "motion graphics", "after effects"}},
			{Name: "video", Triggers: []string{"video", "film", "cinema"}},
			{Name: "music visual", Triggers: []string{"music", "audio", "sound", "spotify", "ableton"}},
		},
		PreferenceCategories: []CategoryRule{
			{Name: "illustration", Triggers: []string{"illustration", "illustrator", "illustrate"}},
			{Name: "animation", Triggers: []string{"animation", "animator", "animate", "2d animation"}},
			{Name: "3d", Triggers: []string{"3d", "3d model", "3d artist", "sculptor"}},
			{Name: "photography", Triggers: []string{"photo", "photography", "photographer"}},
			{Name: "ui/ux", Triggers: []string{"ui", "ux", "interface", "ui/ux"}},
			{Name: "concept art", Triggers: []string{"concept art", "concept artist"}},
			{Name: "mural", Triggers: []string{"mural", "street art"}},
			{Name: "nft", Triggers: []string{"nft"}},
			{Name: "ar/vr", Triggers: []string{"ar", "vr", "augmented reality", "virtual reality", "filter"}},
			{Name: "motion graphics", Triggers: []string{"motion", "motion graphics"}},
			{Name: "video", Triggers: []string{"video", "film", "cinema"}},
			{Name: "music visual", Triggers: []string{"music", "audio", "sound", "visual"}},
		},
		QualityMarkers: []string{
			"featured", "award", "exhibition", "museum", "published", "viral",
			"1m", "million", "k+", "downloads", "views", "sold",
		},
	}
}

func newStopwords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
