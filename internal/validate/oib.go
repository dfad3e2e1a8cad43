package validate

// ValidOIB checks the shape of a Croatian OIB: exactly 11 digits whose last
// digit is the ISO 7064 MOD 11,10 check digit of the first ten. Nothing
// beyond the format is verified; whether the OIB is actually assigned is
// out of scope.
func ValidOIB(s string) bool {
	if len(s) != 11 {
		return false
	}
	a := 10
	for i := 0; i < 10; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		a = (a + int(c-'0')) % 10
		if a == 0 {
			a = 10
		}
		a = (a * 2) % 11
	}
	last := s[10]
	if last < '0' || last > '9' {
		return false
	}
	return int(last-'0') == (11-a)%10
}
