package pricing

import "github.com/Rhymond/go-money"

// Format renders a minor-unit amount as a locale-formatted currency string,
// e.g. 648 with code "USD" becomes "$6.48". Formatting happens on read only;
// stored values stay numeric.
func Format(amount Money, code string) string {
	if code == "" {
		code = money.USD
	}
	return money.New(amount, code).Display()
}
