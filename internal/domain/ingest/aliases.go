package ingest

// Header aliases per field, probed in order. The first present, non-empty value wins.
var (
	NameAliases       = []string{"Name", "player_name"}
	IDAliases         = []string{"Name + ID", "player_id"}
	PositionAliases   = []string{"Position", "position"}
	TeamAliases       = []string{"Team", "TeamAbbrev", "team_abbr"}
	SalaryAliases     = []string{"Salary", "salary"}
	ProjectionAliases = []string{"Projection", "DK Projection", "dk_projection", "projection"}
	OwnershipAliases  = []string{"Own%", "Ownership%", "ownership_pct", "proj_ownership"}
	StdDevAliases     = []string{"Std Dev", "std_dev"}
	CeilingAliases    = []string{"Ceiling", "ceiling"}
	BustAliases       = []string{"Bust%", "bust_pct"}
	BoomAliases       = []string{"Boom%", "boom_pct"}
	OptimalAliases    = []string{"Optimal%", "optimal_pct"}
	LeverageAliases   = []string{"Leverage", "leverage"}
)

// Numeric field names reported in model.Player.Missing.
const (
	FieldSalary       = "salary"
	FieldProjection   = "projection"
	FieldOwnership    = "ownership"
	FieldPtsPerDollar = "pts_per_dollar"
	FieldStdDev       = "std_dev"
	FieldCeiling      = "ceiling"
	FieldBust         = "bust_pct"
	FieldBoom         = "boom_pct"
	FieldOptimal      = "optimal_pct"
	FieldLeverage     = "leverage"
)

// lookup returns the first non-empty value among aliases.
func lookup(row map[string]string, aliases []string) (string, bool) {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}
