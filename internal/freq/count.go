package freq

// isLetter reports whether b is an ASCII letter.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// letterIndex maps an ASCII letter to 0..25 regardless of case.
func letterIndex(b byte) int {
	if b >= 'a' && b <= 'z' {
		return int(b - 'a')
	}
	return int(b - 'A')
}

// CountLetters returns the number of ASCII letters in text.
func CountLetters(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		if isLetter(text[i]) {
			count++
		}
	}
	return count
}

// CountOccurrences returns how many times letter appears in text, ignoring case.
// Non-letters always count zero.
func CountOccurrences(text string, letter byte) int {
	if !isLetter(letter) {
		return 0
	}
	target := letterIndex(letter)
	count := 0
	for i := 0; i < len(text); i++ {
		if isLetter(text[i]) && letterIndex(text[i]) == target {
			count++
		}
	}
	return count
}

// Profile returns per-letter counts for text, index 0 for 'a'.
func Profile(text string) [Letters]int {
	var counts [Letters]int
	for i := 0; i < len(text); i++ {
		if isLetter(text[i]) {
			counts[letterIndex(text[i])]++
		}
	}
	return counts
}
