package components

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

// FormDefaults pre-fills the generator form.
type FormDefaults struct {
	Data   string
	ECC    string
	Module string
	Eyes   string
	Fg     string
	Bg     string
}

var (
	ModuleOptions = []Option{
		{"square", "Square"},
		{"gapped", "Gapped square"},
		{"circle", "Circle"},
		{"rounded", "Rounded"},
		{"vbars", "Vertical bars"},
		{"hbars", "Horizontal bars"},
	}
	EyeOptions = []Option{
		{"rounded", "Rounded"},
		{"square", "Square"},
		{"circle", "Circle"},
		{"none", "Per module"},
	}
	ECCOptions = []Option{
		{"L", "Low"},
		{"M", "Medium"},
		{"Q", "Quartile"},
		{"H", "High"},
	}
	ModeOptions = []Option{
		{"render", "Styled"},
		{"composite", "Layered eyes"},
	}
)
