package i18n

import (
	"strconv"

	"golang.org/x/text/message"

	"github.com/aarush-luthra/Government-Scheme/internal/utils"
)

// nativeDigits maps language codes to their 0-9 digit runes. Languages whose
// everyday writing keeps Latin digits are absent and fall through unchanged.
var nativeDigits = map[string][]rune{
	"hi_IN": []rune("०१२३४५६७८९"),
	"mr_IN": []rune("०१२३४५६७८९"),
	"bn_IN": []rune("০১২৩৪৫৬৭৮৯"),
	"as_IN": []rune("০১২৩৪৫৬৭৮৯"),
	"ta_IN": []rune("௦௧௨௩௪௫௬௭௮௯"),
	"te_IN": []rune("౦౧౨౩౪౫౬౭౮౯"),
	"kn_IN": []rune("೦೧೨೩೪೫೬೭೮೯"),
	"ml_IN": []rune("൦൧൨൩൪൫൬൭൮൯"),
	"gu_IN": []rune("૦૧૨૩૪૫૬૭૮૯"),
	"pa_IN": []rune("੦੧੨੩੪੫੬੭੮੯"),
	"or_IN": []rune("୦୧୨୩୪୫୬୭୮୯"),
	"ur_IN": []rune("۰۱۲۳۴۵۶۷۸۹"),
	"ks_IN": []rune("۰۱۲۳۴۵۶۷۸۹"),
}

// Digits transliterates ASCII digits in s to the native digit forms of lang.
// Everything else passes through untouched.
func Digits(lang, s string) string {
	digits, ok := nativeDigits[lang]
	if !ok {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, digits[r-'0'])
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

// FormatInt renders n with the digit forms of lang. The value itself stays a
// plain integer everywhere outside display.
func FormatInt(lang string, n int) string {
	return Digits(lang, strconv.Itoa(n))
}

// FormatAmount renders n with locale grouping (Indian lakh/crore grouping for
// the Indic locales) and native digits. Used for income figures.
func FormatAmount(lang string, n int) string {
	p := message.NewPrinter(utils.LanguageTag(lang))
	return Digits(lang, p.Sprintf("%d", n))
}

// AgeOption pairs a selectable age with its localized display form.
type AgeOption struct {
	Value int
	Label string
}

// AgeOptions regenerates the age dropdown for lang: labels use the target
// language's digit forms, values remain plain integers.
func AgeOptions(lang string) []AgeOption {
	out := make([]AgeOption, 0, 101)
	for age := 0; age <= 100; age++ {
		out = append(out, AgeOption{Value: age, Label: FormatInt(lang, age)})
	}
	return out
}
