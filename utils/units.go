package utils

import "fmt"

func SiUnits(number float64, decimals int) string {
	if number >= 1000000000000 {
		return fmt.Sprintf("%.*f T", decimals, number/1000000000000)
	} else if number >= 1000000000 {
		return fmt.Sprintf("%.*f G", decimals, number/1000000000)
	} else if number >= 1000000 {
		return fmt.Sprintf("%.*f M", decimals, number/1000000)
	} else if number >= 1000 {
		return fmt.Sprintf("%.*f K", decimals, number/1000)
	}

	return fmt.Sprintf("%.*f ", decimals, number)
}

// BinaryUnits byte sizes in powers of 1024
func BinaryUnits(number uint64) string {
	switch {
	case number >= 1<<30 && number%(1<<30) == 0:
		return fmt.Sprintf("%d GiB", number>>30)
	case number >= 1<<20 && number%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", number>>20)
	case number >= 1<<10 && number%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", number>>10)
	}
	return fmt.Sprintf("%d B", number)
}
