package compat

// Reference category names
const (
	CategoryCoreValues  = "CORE_VALUES"
	CategoryLifestyle   = "LIFESTYLE"
	CategoryInterests   = "INTERESTS"
	CategoryPreferences = "PREFERENCES"
)

// DefaultConfig returns the production questionnaire, weights, categories and
// similarity table
func DefaultConfig() Config {
	return Config{
		Questions:    defaultQuestions(),
		Weights:      defaultWeights(),
		Categories:   defaultCategories(),
		Similarities: defaultSimilarities(),
	}
}

func defaultQuestions() []Question {
	return []Question{
		{ID: 1, Prompt: "What's your ideal weekend activity?", Options: []string{"Reading", "Gaming", "Sports", "Movies", "Traveling", "Cooking", "Music", "Art", "Shopping", "Hiking"}},
		{ID: 2, Prompt: "How do you prefer to communicate?", Options: []string{"Texting", "Calling", "InPerson", "Email", "VideoChat", "Letters", "Voice Messages"}},
		{ID: 3, Prompt: "What's your preferred music genre?", Options: []string{"Pop", "Rock", "HipHop", "Classical", "Jazz", "Electronic", "Folk", "Metal", "RnB", "Country"}},
		{ID: 4, Prompt: "How do you handle stress?", Options: []string{"Exercise", "Meditation", "Sleep", "Talk", "Write", "Music", "Nature", "Food", "Games", "Work"}},
		{ID: 5, Prompt: "What's your ideal date?", Options: []string{"Dinner", "Movies", "Adventure", "Concert", "Museum", "Park", "Beach", "Cafe", "Sports", "Cooking"}},
		{ID: 6, Prompt: "How do you make decisions?", Options: []string{"Logical", "Emotional", "Intuitive", "Analytical", "Cautious", "Quick", "Collaborative"}},
		{ID: 7, Prompt: "What's your love language?", Options: []string{"Touch", "Words", "Gifts", "Time", "Acts", "All"}},
		{ID: 8, Prompt: "What's your ideal living environment?", Options: []string{"City", "Suburb", "Rural", "Beach", "Mountain", "Forest", "Island", "Desert"}},
		{ID: 9, Prompt: "How do you view success?", Options: []string{"Wealth", "Impact", "Freedom", "Knowledge", "Fame", "Power", "Balance", "Happiness"}},
		{ID: 10, Prompt: "What's your preferred social setting?", Options: []string{"Parties", "SmallGroups", "OneOnOne", "Alone", "Family", "Crowds", "Nature", "Online"}},
		{ID: 11, Prompt: "How do you approach problems?", Options: []string{"Creative", "Systematic", "Collaborative", "Independent", "Cautious", "Bold", "Analytical"}},
		{ID: 12, Prompt: "What's your ideal pet?", Options: []string{"Dog", "Cat", "Bird", "Fish", "Reptile", "None", "Multiple", "Exotic"}},
		{ID: 13, Prompt: "How do you prefer to learn?", Options: []string{"Reading", "Watching", "Doing", "Teaching", "Discussion", "Writing", "Experience"}},
		{ID: 14, Prompt: "What's your preferred cuisine?", Options: []string{"Indian", "Italian", "Chinese", "Japanese", "Mexican", "Thai", "French", "American", "Mediterranean"}},
		{ID: 15, Prompt: "How do you spend your free time?", Options: []string{"Learning", "Creating", "Relaxing", "Socializing", "Exercise", "Entertainment", "Nature", "Hobbies"}},
		{ID: 16, Prompt: "What's your ideal career field?", Options: []string{"Technology", "Arts", "Science", "Business", "Healthcare", "Education", "Media"}},
		{ID: 17, Prompt: "How do you express emotions?", Options: []string{"Openly", "Reserved", "Actions", "Words", "Art", "Music", "Writing", "Rarely"}},
		{ID: 18, Prompt: "What's your preferred season?", Options: []string{"Spring", "Summer", "Fall", "Winter"}},
		{ID: 19, Prompt: "How do you approach relationships?", Options: []string{"Casual", "Serious", "Friendship", "Traditional", "Modern", "Spontaneous", "Planned"}},
		{ID: 20, Prompt: "What's your ideal vacation?", Options: []string{"Beach", "Mountain", "City", "Cruise", "Camping", "Resort", "RoadTrip", "Staycation"}},
	}
}

func defaultWeights() map[int]float64 {
	return map[int]float64{
		// Core values and lifestyle
		4: 2.0, 6: 2.0, 7: 2.0, 9: 2.0, 17: 2.0, 19: 2.0,
		// Personal interests
		1: 1.5, 3: 1.5, 5: 1.5, 15: 1.5,
		// General preferences
		2: 1.0, 8: 1.0, 10: 1.0, 11: 1.0, 12: 1.0, 13: 1.0, 14: 1.0, 16: 1.0, 18: 1.0, 20: 1.0,
	}
}

func defaultCategories() []Category {
	return []Category{
		{
			Name:        CategoryCoreValues,
			Weight:      2.5,
			Threshold:   0.7,
			QuestionIDs: []int{4, 6, 7, 9, 17, 19},
			Description: "Fundamental values and approach to relationships",
		},
		{
			Name:        CategoryLifestyle,
			Weight:      2.0,
			Threshold:   0.5,
			QuestionIDs: []int{1, 8, 10, 15},
			Description: "Daily life and social preferences",
		},
		{
			Name:        CategoryInterests,
			Weight:      1.5,
			Threshold:   0.4,
			QuestionIDs: []int{3, 5, 14, 16},
			Description: "Personal interests and activities",
		},
		{
			Name:        CategoryPreferences,
			Weight:      1.0,
			Threshold:   0.3,
			QuestionIDs: []int{2, 11, 12, 13, 18, 20},
			Description: "General preferences and choices",
		},
	}
}

func defaultSimilarities() *SimilarityTable {
	t := NewSimilarityTable()

	// Communication
	t.SetSymmetric(2, "Texting", "VideoChat", 0.8)
	t.SetSymmetric(2, "Calling", "VideoChat", 0.9)
	t.SetSymmetric(2, "InPerson", "VideoChat", 0.7)

	// Social setting
	t.SetSymmetric(10, "Parties", "Crowds", 0.8)
	t.SetSymmetric(10, "SmallGroups", "OneOnOne", 0.7)
	t.SetSymmetric(10, "Family", "SmallGroups", 0.8)

	// Stress handling. "Sports" is not a question 4 option, so that pair never fires.
	t.SetSymmetric(4, "Exercise", "Sports", 0.9)
	t.SetSymmetric(4, "Meditation", "Nature", 0.8)
	t.SetSymmetric(4, "Music", "Write", 0.7)

	return t
}
