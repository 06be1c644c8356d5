// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package words

// fallbackLists are the built-in word lists used whenever a persisted list
// is missing or unreadable. Loading never fails because of these.
var fallbackLists = map[int][]string{
	1: {
		"the", "and", "for", "are", "but", "not", "you", "all", "any",
		"can", "day", "get", "has", "him", "his", "how", "man", "new",
		"now", "old", "see", "two", "way", "who", "boy", "did", "its",
		"let", "put", "say", "she", "too", "was",
	},
	2: {
		"about", "after", "again", "below", "could", "every", "first",
		"found", "great", "house", "large", "learn", "never", "other",
		"place", "plant", "point", "right", "small", "sound", "spell",
		"still", "study", "their", "there", "these", "thing", "think",
	},
	3: {
		"algorithm", "function", "variable", "keyboard", "practice",
		"sequence", "pattern", "complete", "continue", "document",
		"exercise", "increase", "organize", "remember", "separate",
		"solution", "together", "category", "discover", "important",
	},
	4: {
		"programming", "development", "javascript", "experience",
		"challenge", "knowledge", "understand", "technology",
		"difference", "particular", "processing", "successful",
		"everything", "production", "collection", "commercial",
		"confidence", "generation", "population", "university",
	},
	5: {
		"asynchronous", "optimization", "inheritance", "polymorphism",
		"encapsulation", "authentication", "authorization", "configuration",
		"implementation", "initialization", "interpretation", "multiplication",
		"organization", "perpendicular", "sophisticated", "synchronization",
		"understanding", "visualization",
	},
}

// fallbackWords returns the built-in list for a level, defaulting to the
// easiest list for out-of-range levels.
func fallbackWords(level int) []string {
	if list, ok := fallbackLists[level]; ok {
		return list
	}
	return fallbackLists[1]
}
