package freq

// ShiftOnce rotates every letter one position back in the alphabet ('a' becomes 'z').
func ShiftOnce(text string) string {
	return Shift(text, 1)
}

// Shift rotates every letter k positions back in the alphabet, wrapping
// around and keeping case. Other bytes are copied unchanged. Any k is
// accepted and reduced modulo 26.
func Shift(text string, k int) string {
	k %= Letters
	if k < 0 {
		k += Letters
	}
	out := []byte(text)
	if k == 0 {
		return string(out)
	}
	for i, b := range out {
		switch {
		case b >= 'a' && b <= 'z':
			out[i] = 'a' + byte((int(b-'a')-k+Letters)%Letters)
		case b >= 'A' && b <= 'Z':
			out[i] = 'A' + byte((int(b-'A')-k+Letters)%Letters)
		}
	}
	return string(out)
}
