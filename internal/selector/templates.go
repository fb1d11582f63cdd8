package selector

// Category names, in table order. They only label the rows; selection never
// looks at them.
var categoryNames = [numCategories]string{
	"landscape",
	"urban",
	"portrait",
	"action",
	"still_life",
	"nature",
	"abstract",
	"indoor",
}

// captionTemplates is fixed for the process lifetime. Nothing in this package
// hands out a reference to it.
var captionTemplates = [numCategories][numVariants]string{
	{
		"A serene landscape featuring rolling hills covered in lush green vegetation, with dramatic clouds forming patterns across a bright blue sky.",
		"A breathtaking vista of majestic mountains, misty valleys, and golden hour lighting casting long shadows across the terrain.",
		"An expansive view of natural terrain with diverse vegetation patterns and atmospheric depth creating layers of visual interest.",
	},
	{
		"A vibrant urban street scene with pedestrians walking past modern storefronts and vintage architecture, bathed in natural daylight.",
		"A dynamic cityscape showing bustling streets filled with activity, modern buildings mixed with historic structures, and varied architectural styles.",
		"An urban environment captured with interesting perspectives of buildings, street life, and the interplay between light and shadow.",
	},
	{
		"A close-up portrait of a person with expressive eyes, warm lighting highlighting facial features and creating depth in the composition.",
		"An intimate portrait study showcasing distinct facial features, character expressions, and careful attention to lighting and skin tones.",
		"A detailed portrait capturing personality and emotion through careful composition, natural lighting, and focus on the subject's unique characteristics.",
	},
	{
		"A dynamic action scene capturing movement and energy, with strong contrasts between light and shadow elements.",
		"An energetic capture of motion in progress, showing fluid movement and dramatic composition that conveys action and excitement.",
		"A vivid action sequence with dynamic posing, strong directional movement, and compelling visual storytelling through motion.",
	},
	{
		"A detailed still life arrangement showcasing objects with interesting textures, colors, and spatial relationships.",
		"An artistic composition of everyday objects arranged with care, highlighting interesting materials, light reflections, and color harmonies.",
		"A thoughtful still life setup featuring varied textures and surfaces, demonstrating compositional balance and visual sophistication.",
	},
	{
		"A nature scene featuring wildlife in their natural habitat, with rich earth tones and natural lighting.",
		"An outdoor scene capturing animals or natural elements in their environment with authentic and nuanced details.",
		"A wildlife moment frozen in time, showing natural behavior and interactions within a richly detailed natural setting.",
	},
	{
		"An abstract composition with bold colors and geometric shapes creating visual rhythm and movement.",
		"An artistic creation featuring experimental color combinations, interesting geometric forms, and dynamic visual patterns.",
		"An abstract piece showcasing creative use of color, form, and composition to create visual interest and artistic expression.",
	},
	{
		"A peaceful indoor scene with natural elements, soft lighting, and comfortable atmosphere.",
		"An interior space with thoughtful arrangement, ambient lighting, and elements that create a welcoming and harmonious environment.",
		"An indoor environment captured with attention to lighting, composition, and the interplay of architectural and decorative elements.",
	},
}

// Caption returns the template at the given position.
// Parameters:
//   - category: row index in [0, NumCategories).
//   - variant: column index in [0, NumVariants).
//
// Returns:
//   - string: caption text.
//   - bool: false if either index is out of range.
func Caption(category, variant int) (string, bool) {
	if category < 0 || category >= numCategories || variant < 0 || variant >= numVariants {
		return "", false
	}
	return captionTemplates[category][variant], true
}

// CategoryName returns the label of a category row, or "" when out of range.
func CategoryName(category int) string {
	if category < 0 || category >= numCategories {
		return ""
	}
	return categoryNames[category]
}

// Templates returns a copy of the whole table.
func Templates() [numCategories][numVariants]string {
	return captionTemplates
}
