package pages

import "fmt"

func describeDuration(sec int) string {
	if sec%60 == 0 {
		if sec == 60 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", sec/60)
	}
	return fmt.Sprintf("%d seconds", sec)
}
