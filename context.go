package xlcalc

// Context is the position a function is evaluated at, plus the settings of
// the evaluator that invoked it. Row and Col are 0-based; Sheet is the index
// of the formula's sheet in the workbook.
type Context struct {
	Row   int
	Col   int
	Sheet int

	locale   *Locale
	date1904 bool
	book     *Workbook
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithContextLocale sets the locale used to read text as numbers.
func WithContextLocale(l *Locale) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.locale = l
		}
	}
}

// WithContextDate1904 selects the 1904 date system for date serials.
func WithContextDate1904(enabled bool) ContextOption {
	return func(c *Context) { c.date1904 = enabled }
}

// WithContextSheet sets the sheet the formula lives on.
func WithContextSheet(sheet int) ContextOption {
	return func(c *Context) { c.Sheet = sheet }
}

// WithContextWorkbook attaches the workbook the formula lives in.
func WithContextWorkbook(wb *Workbook) ContextOption {
	return func(c *Context) { c.book = wb }
}

// NewContext creates a Context for a formula at (row, col).
func NewContext(row, col int, opts ...ContextOption) *Context {
	c := &Context{Row: row, Col: col, locale: English}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Locale returns the locale for text-to-number coercion.
func (c *Context) Locale() *Locale { return c.locale }

// Date1904 reports whether date serials count from 1904-01-01.
func (c *Context) Date1904() bool { return c.date1904 }

// Workbook returns the workbook the formula lives in, or nil.
func (c *Context) Workbook() *Workbook { return c.book }

// atRow returns a copy of c positioned on another row.
func (c *Context) atRow(row int) *Context {
	if row == c.Row {
		return c
	}
	cp := *c
	cp.Row = row
	return &cp
}

// Single resolves an operand at this context's position.
func (c *Context) Single(v Value) (Value, error) {
	return SingleValue(v, c.Row, c.Col)
}

// Number resolves an operand and coerces it to a number.
func (c *Context) Number(v Value) (float64, error) {
	sv, err := c.Single(v)
	if err != nil {
		return 0, err
	}
	return c.locale.ToDouble(sv)
}

// Int resolves an operand and coerces it to an integer.
func (c *Context) Int(v Value) (int, error) {
	sv, err := c.Single(v)
	if err != nil {
		return 0, err
	}
	return c.locale.ToInt(sv)
}
