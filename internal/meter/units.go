package meter

import "fmt"

const unitPrefixes = "KMGTPEZY"

// HumanUnit formats a KiB count with a binary prefix: three significant
// digits above KiB, whole numbers below.
//
//	1023    -> "1023Ki"
//	1024    -> "1.00Mi"
//	1048576 -> "1.00Gi"
func HumanUnit(kib uint64) string {
	powi := uint64(1)
	p := 0
	for kib/1024 >= powi && p+1 < len(unitPrefixes) {
		powi *= 1024
		p++
	}
	precision := 0
	if p > 0 {
		precision = 2
		powj := uint64(1)
		for precision > 0 {
			powj *= 10
			if kib/powi < powj {
				break
			}
			precision--
		}
	}
	return fmt.Sprintf("%.*f%ci", precision, float64(kib)/float64(powi), unitPrefixes[p])
}

// HumanUnitFloat is HumanUnit for sampled values. Negative and NaN values
// format as zero.
func HumanUnitFloat(kib float64) string {
	if !(kib > 0) {
		return HumanUnit(0)
	}
	return HumanUnit(uint64(kib))
}
