// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package difficulty

// Keyboard geometry for a standard QWERTY layout. The finger clusters map
// each key to the finger that types it; two keys in the same cluster form a
// same-finger bigram.
var fingerClusters = []string{
	"1qaz",     // left pinky
	"2wsx",     // left ring
	"3edc",     // left middle
	"45rtfgvb", // left index
	"67yuhjnm", // right index
	"8ik,",     // right middle
	"9ol.",     // right ring
	"0p;/",     // right pinky
}

const (
	leftHandKeys  = "qwertasdfgzxcvb"
	rightHandKeys = "yuiophjklnm"
)

// rollingTrigraphs are adjacent three-key runs that the hand sweeps across
// in one motion; same-hand runs outside this set count as awkward.
var rollingTrigraphs = []string{
	"qwe", "wer", "ert", "rty", "tyu", "yui", "uio", "iop",
	"asd", "sdf", "dfg", "fgh", "ghj", "hjk", "jkl",
	"zxc", "xcv", "cvb", "vbn", "bnm",
}

func sameFinger(a, b rune) bool {
	for _, cluster := range fingerClusters {
		if containsRune(cluster, a) && containsRune(cluster, b) {
			return true
		}
	}
	return false
}

func leftHand(r rune) bool  { return containsRune(leftHandKeys, r) }
func rightHand(r rune) bool { return containsRune(rightHandKeys, r) }

// alternatingHands reports whether two keys are typed by different hands.
// Keys outside either hand set (digits, punctuation) never alternate.
func alternatingHands(a, b rune) bool {
	return (leftHand(a) && rightHand(b)) || (rightHand(a) && leftHand(b))
}

func sameHand(a, b rune) bool {
	return (leftHand(a) && leftHand(b)) || (rightHand(a) && rightHand(b))
}

func rollingMotion(trigraph string) bool {
	for _, roll := range rollingTrigraphs {
		if trigraph == roll || trigraph == reverse(roll) {
			return true
		}
	}
	return false
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
