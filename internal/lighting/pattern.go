package lighting

// DateRange is one inclusive calendar window during which a pattern
// applies. A zero Year matches any year.
type DateRange struct {
	Year       int
	FirstMonth int
	FirstDay   int
	LastMonth  int
	LastDay    int
}

// Pattern pairs a holiday identity with the calendar windows it covers
// and a pure render function. Draw must depend only on the pixel count;
// it carries no external state and no randomness.
type Pattern struct {
	Name   string
	Ranges []DateRange
	Draw   func(pixels int) []RGB
}

// Common pattern colors.
var (
	red    = RGB{1, 0, 0}
	green  = RGB{0, 1, 0}
	blue   = RGB{0, 0, 1}
	white  = RGB{1, 1, 1}
	yellow = RGB{1, 1, 0}
	orange = RGB{1, 0.65, 0}
	purple = RGB{0.5, 0, 0.5}
	pink   = RGB{1, 0.41, 0.71}
)

// solid fills every pixel with one color.
func solid(c RGB) func(int) []RGB {
	return func(pixels int) []RGB {
		buf := make([]RGB, pixels)
		for i := range buf {
			buf[i] = c
		}
		return buf
	}
}

// panelStripes assigns colors by panel index modulo the color count,
// producing the repeating per-panel motif most holidays use.
func panelStripes(panelSize int, colors ...RGB) func(int) []RGB {
	return func(pixels int) []RGB {
		buf := make([]RGB, pixels)
		for i := range buf {
			buf[i] = colors[(i/panelSize)%len(colors)]
		}
		return buf
	}
}

// easterDates lists the two display days for Easter per year. Easter has
// no fixed-formula date, so the table is explicit; years outside it never
// match. Each row is {year, firstMonth, firstDay, lastMonth, lastDay}.
var easterDates = [][5]int{
	{2016, 3, 27, 3, 28},
	{2017, 4, 15, 4, 16},
	{2018, 3, 31, 4, 1},
	{2019, 4, 20, 4, 21},
	{2020, 4, 11, 4, 12},
	{2021, 4, 3, 4, 4},
	{2022, 4, 16, 4, 17},
	{2023, 4, 8, 4, 9},
	{2024, 3, 30, 3, 31},
	{2025, 4, 19, 4, 20},
	{2026, 4, 4, 4, 5},
	{2027, 3, 27, 3, 28},
	{2028, 4, 15, 4, 16},
	{2029, 3, 31, 4, 1},
	{2030, 4, 20, 4, 21},
	{2031, 4, 12, 4, 13},
	{2032, 3, 27, 3, 28},
	{2033, 4, 16, 4, 17},
	{2034, 4, 8, 4, 9},
	{2035, 3, 24, 3, 25},
	{2036, 4, 12, 4, 13},
	{2037, 4, 4, 4, 5},
	{2038, 4, 24, 4, 25},
	{2039, 4, 9, 4, 10},
	{2040, 3, 31, 4, 1},
	{2041, 4, 20, 4, 21},
	{2042, 4, 5, 4, 6},
	{2043, 3, 28, 3, 29},
	{2044, 4, 16, 4, 17},
	{2045, 4, 8, 4, 9},
	{2046, 3, 24, 3, 25},
	{2047, 4, 13, 4, 14},
	{2048, 4, 4, 4, 5},
	{2049, 4, 17, 4, 18},
}

func easterRanges() []DateRange {
	ranges := make([]DateRange, len(easterDates))
	for i, d := range easterDates {
		ranges[i] = DateRange{Year: d[0], FirstMonth: d[1], FirstDay: d[2], LastMonth: d[3], LastDay: d[4]}
	}
	return ranges
}

// Patterns builds the static holiday pattern table. The set is closed and
// ordered; the selector honors registration order when windows overlap.
func Patterns(panelSize int) []Pattern {
	return []Pattern{
		{
			Name:   "christmas",
			Ranges: []DateRange{{FirstMonth: 12, FirstDay: 1, LastMonth: 12, LastDay: 26}},
			Draw:   panelStripes(panelSize, red, green),
		},
		{
			Name:   "valentine",
			Ranges: []DateRange{{FirstMonth: 2, FirstDay: 14, LastMonth: 2, LastDay: 14}},
			Draw:   solid(red),
		},
		{
			Name:   "independence-day",
			Ranges: []DateRange{{FirstMonth: 7, FirstDay: 3, LastMonth: 7, LastDay: 4}},
			Draw:   panelStripes(panelSize, red, white, blue),
		},
		{
			Name:   "halloween",
			Ranges: []DateRange{{FirstMonth: 10, FirstDay: 30, LastMonth: 10, LastDay: 31}},
			Draw:   panelStripes(panelSize, orange, purple),
		},
		{
			Name:   "st-patricks",
			Ranges: []DateRange{{FirstMonth: 3, FirstDay: 16, LastMonth: 3, LastDay: 17}},
			Draw:   solid(green),
		},
		{
			Name:   "easter",
			Ranges: easterRanges(),
			Draw:   panelStripes(panelSize, yellow, purple, red, green, blue, pink, orange),
		},
	}
}
