// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package difficulty scores words for typing difficulty. Analysis is a pure
// function of the word: four component scores (length, character complexity,
// linguistic pattern, keyboard biomechanics) are each clamped to [1,5] and
// averaged into the final score.
package difficulty

import (
	"strings"
	"unicode"
)

// commonBigrams are the most frequent English letter pairs. Words built from
// these are easier to type from muscle memory, so they lower the pattern score.
var commonBigrams = map[string]struct{}{
	"th": {}, "he": {}, "in": {}, "er": {}, "an": {}, "re": {}, "on": {},
	"at": {}, "en": {}, "nd": {}, "ti": {}, "es": {}, "or": {}, "te": {},
	"of": {}, "ed": {}, "is": {}, "it": {}, "al": {}, "ar": {}, "st": {},
	"to": {}, "nt": {}, "ng": {}, "se": {}, "ha": {}, "as": {}, "ou": {},
	"io": {}, "le": {}, "ve": {}, "co": {}, "me": {}, "de": {}, "hi": {},
	"ri": {}, "ro": {}, "ic": {}, "ne": {}, "ea": {}, "ra": {}, "ce": {},
	"li": {}, "ch": {}, "ll": {}, "be": {}, "ma": {}, "si": {}, "om": {},
	"ur": {},
}

// commonSuffixes maps a suffix to how common it is in English (0..1).
// The rarer the word's ending, the higher its pattern sub-score.
var commonSuffixes = map[string]float64{
	"ing":  0.9,
	"tion": 0.9,
	"er":   0.8,
	"ed":   0.8,
	"es":   0.7,
	"ly":   0.7,
	"s":    0.6,
	"ment": 0.6,
	"est":  0.5,
	"ness": 0.5,
	"able": 0.5,
	"ous":  0.4,
	"ful":  0.4,
}

// Analyze computes the difficulty profile for a word. Identical input always
// yields an identical profile. The empty word yields the zero profile.
func Analyze(word string) Profile {
	if word == "" {
		return Profile{}
	}

	p := Profile{
		Word:            word,
		LengthScore:     lengthScore(word),
		ComplexityScore: complexityScore(word),
		PatternScore:    patternScore(word),
		TypingScore:     typingScore(word),
	}
	p.Final = clampScore((p.LengthScore + p.ComplexityScore + p.PatternScore + p.TypingScore) / 4)
	return p
}

// lengthScore is a step function of character count.
func lengthScore(word string) float64 {
	switch n := len([]rune(word)); {
	case n <= 3:
		return 1.0
	case n <= 5:
		return 2.0
	case n <= 7:
		return 3.0
	case n <= 9:
		return 4.0
	default:
		return 5.0
	}
}

// complexityScore blends character-class ratios: uppercase and
// non-alphanumeric characters weigh heaviest, then digits, then repeats.
func complexityScore(word string) float64 {
	runes := []rune(word)
	n := float64(len(runes))

	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}

	var upper, special, digit, repeated float64
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			special++
		}
		if unicode.IsDigit(r) {
			digit++
		}
		if counts[r] > 1 {
			repeated++
		}
	}

	blend := (upper/n*5 + special/n*5 + digit/n*4 + repeated/n*3) / 4
	return clampScore(blend)
}

// patternScore combines bigram rarity, suffix commonality and the share of
// same-hand bigrams. Words with no bigrams score all ratios as zero.
func patternScore(word string) float64 {
	lower := []rune(strings.ToLower(word))
	bigrams := len(lower) - 1

	var rareRatio, sameHandRatio float64
	if bigrams > 0 {
		var rare, same int
		for i := 0; i < bigrams; i++ {
			pair := string(lower[i : i+2])
			if _, ok := commonBigrams[pair]; !ok {
				rare++
			}
			if sameHand(lower[i], lower[i+1]) {
				same++
			}
		}
		rareRatio = float64(rare) / float64(bigrams)
		sameHandRatio = float64(same) / float64(bigrams)
	}

	rarity := 1 + 4*rareRatio
	suffix := 5 - 4*bestSuffixWeight(string(lower))
	hands := 1 + 4*sameHandRatio

	return clampScore((rarity + suffix + hands) / 3)
}

func bestSuffixWeight(lower string) float64 {
	best := 0.0
	for suffix, weight := range commonSuffixes {
		if strings.HasSuffix(lower, suffix) && weight > best {
			best = weight
		}
	}
	return best
}

// typingScore counts keyboard-biomechanics hazards: same-finger bigram
// collisions, awkward same-hand trigraphs that are not rolling motions, and
// the complement of hand alternation. Each sub-count is capped at 5.
func typingScore(word string) float64 {
	lower := []rune(strings.ToLower(word))
	bigrams := len(lower) - 1
	if bigrams < 1 {
		return 1.0
	}

	var sameFingerCount, alternating int
	for i := 0; i < bigrams; i++ {
		if sameFinger(lower[i], lower[i+1]) {
			sameFingerCount++
		}
		if alternatingHands(lower[i], lower[i+1]) {
			alternating++
		}
	}

	var awkward int
	for i := 0; i+2 < len(lower); i++ {
		a, b, c := lower[i], lower[i+1], lower[i+2]
		if sameHand(a, b) && sameHand(b, c) && !rollingMotion(string(lower[i:i+3])) {
			awkward++
		}
	}

	altRatio := float64(alternating) / float64(bigrams)

	sf := capScore(1 + float64(sameFingerCount))
	awk := capScore(1 + float64(awkward))
	alt := 1 + 4*(1-altRatio)

	return clampScore((sf + awk + alt) / 3)
}

func capScore(v float64) float64 {
	if v > 5 {
		return 5
	}
	return v
}

func clampScore(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
