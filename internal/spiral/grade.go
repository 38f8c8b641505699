// Package spiral computes the cyclical grade attached to accepted
// messages. The grade is decorative metadata; it never influences
// admission.
package spiral

import "unicode"

// Grade maps text to a degree on the 360-cycle: the sum of its letter
// values modulo 360. Zero is never reported (the zero line is taboo); an
// exact multiple of the cycle, including empty text, reads as 360.
func Grade(text string) int {
	sum := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			sum += int(r)
		}
	}
	grade := sum % 360
	if grade == 0 {
		grade = 360
	}
	return grade
}
