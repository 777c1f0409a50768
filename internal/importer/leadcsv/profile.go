package leadcsv

// nameMode determines how the lead's name is assembled from a row.
type nameMode int

const (
	// nameSingle means one full-name column.
	nameSingle nameMode = iota
	// nameSplit means separate first and last name columns.
	nameSplit
)

// Profile describes the column layout of one CSV export flavor. Supporting
// a new source CRM is just another Profile in the list.
type Profile struct {
	Name     string
	NameMode nameMode
	NameCol  string // used when NameMode == nameSingle
	FirstCol string // used when NameMode == nameSplit
	LastCol  string // used when NameMode == nameSplit

	EmailCol   string
	CompanyCol string
	PhoneCol   string
	ScoreCol   string // optional, not all sources score leads
}

// requiredCols lists the headers that must all be present for this profile
// to match. Optional columns are picked up when present but never required.
func (p Profile) requiredCols() []string {
	cols := []string{p.EmailCol}

	switch p.NameMode {
	case nameSingle:
		cols = append(cols, p.NameCol)
	case nameSplit:
		cols = append(cols, p.FirstCol, p.LastCol)
	}

	return cols
}

// profiles is ordered most specific first so a file with both "Name" and
// "First Name" columns matches the split layout.
var profiles = []Profile{
	{
		Name:       "hubspot",
		NameMode:   nameSplit,
		FirstCol:   "First Name",
		LastCol:    "Last Name",
		EmailCol:   "Email Address",
		CompanyCol: "Company Name",
		PhoneCol:   "Phone Number",
		ScoreCol:   "Lead Score",
	},
	{
		Name:       "outlook",
		NameMode:   nameSplit,
		FirstCol:   "First Name",
		LastCol:    "Last Name",
		EmailCol:   "E-mail Address",
		CompanyCol: "Company",
		PhoneCol:   "Business Phone",
	},
	{
		Name:       "generic",
		NameMode:   nameSingle,
		NameCol:    "Name",
		EmailCol:   "Email",
		CompanyCol: "Company",
		PhoneCol:   "Phone",
		ScoreCol:   "Score",
	},
}
