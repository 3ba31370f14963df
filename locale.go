package xlcalc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// fpLiteral is the plain decimal literal accepted after locale separators
// have been normalised: optional sign, digits with an optional fraction, and
// an optional exponent. Hex, "Inf", "NaN" and underscores are rejected.
var fpLiteral = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

// Locale decides how text is read as a number when a function coerces it.
type Locale struct {
	tag     language.Tag
	decimal string
	group   string
	printer *message.Printer
}

// English is the default locale: "." decimal point, "," grouping.
var English = NewLocale(language.AmericanEnglish)

// NewLocale derives the decimal and grouping separators for tag by printing a
// probe number with x/text's CLDR data.
func NewLocale(tag language.Tag) *Locale {
	p := message.NewPrinter(tag)
	probe := p.Sprintf("%v", number.Decimal(1234567.5, number.MaxFractionDigits(1)))
	l := &Locale{tag: tag, decimal: ".", group: ",", printer: p}
	if dec, grp, ok := separators(probe); ok {
		l.decimal, l.group = dec, grp
	}
	return l
}

// separators reads the probe "1<g>234<g>567<d>5" back apart. Digits may be
// non-ASCII in some locales, so any Unicode digit counts.
func separators(probe string) (decimal, group string, ok bool) {
	var runs []string
	var cur strings.Builder
	inDigits := true
	for _, r := range probe {
		d := unicode.IsDigit(r)
		if d != inDigits {
			runs = append(runs, cur.String())
			cur.Reset()
			inDigits = d
		}
		cur.WriteRune(r)
	}
	runs = append(runs, cur.String())
	// digits, sep, digits, sep, digits, dec, digits
	if len(runs) != 7 {
		return "", "", false
	}
	return runs[5], runs[1], true
}

// Tag returns the language tag the locale was built from.
func (l *Locale) Tag() language.Tag { return l.tag }

// DecimalSeparator returns the decimal separator, e.g. "," for German.
func (l *Locale) DecimalSeparator() string { return l.decimal }

// GroupSeparator returns the digit grouping separator.
func (l *Locale) GroupSeparator() string { return l.group }

// ParseNumber reads locale-formatted text such as "1.234,5" (de) or
// " -1,234.5 " (en). Grouping separators must split the integer part into
// groups of three. A trailing percent sign divides by 100.
func (l *Locale) ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		scale = 0.01
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	intPart, frac, hasFrac := strings.Cut(s, l.decimal)
	if l.group != "" && strings.Contains(intPart, l.group) {
		var ok bool
		if intPart, ok = ungroup(intPart, l.group); !ok {
			return 0, false
		}
	}
	norm := intPart
	if hasFrac {
		norm += "." + frac
	}
	f, ok := ParseDouble(norm)
	if !ok {
		return 0, false
	}
	return f * scale, true
}

func ungroup(s, sep string) (string, bool) {
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	groups := strings.Split(s, sep)
	for i, g := range groups {
		n := utf8.RuneCountInString(g)
		if (i == 0 && (n < 1 || n > 3)) || (i > 0 && n != 3) {
			return "", false
		}
	}
	return sign + strings.Join(groups, ""), true
}

// FormatNumber renders a number the way text coercion shows it: no grouping,
// the locale's decimal separator, shortest round-trip digits, and scientific
// notation for very large or very small magnitudes.
func (l *Locale) FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e15 || abs < 1e-9 {
		s := strconv.FormatFloat(f, 'E', -1, 64)
		return strings.Replace(s, ".", l.decimal, 1)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return strings.Replace(s, ".", l.decimal, 1)
}

// FormatGrouped renders a number with the locale's grouping, for display in
// logs and examples.
func (l *Locale) FormatGrouped(f float64) string {
	return l.printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(15)))
}
