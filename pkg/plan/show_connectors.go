package plan

// KindShowConnectors identifies SHOW CONNECTORS.
const KindShowConnectors Kind = "show_connectors"

var showConnectorsExplain = ExplainSpec{
	DisplayName: "Show Connectors",
	Levels:      AllLevels,
	Fields: []FieldSpec{
		{
			Name:   "pattern",
			Label:  "pattern",
			Levels: AllLevels,
			Value: func(d Desc) interface{} {
				if p := d.(*ShowConnectorsDesc).Pattern(); p != nil {
					return *p
				}
				return nil
			},
		},
		{
			Name:   "resultDestination",
			Label:  "result file",
			Levels: Levels{LevelExtended},
			Value: func(d Desc) interface{} {
				return d.(*ShowConnectorsDesc).ResultDestination()
			},
		},
	},
}

func init() {
	MustRegister(KindShowConnectors, showConnectorsExplain)
}

// ShowConnectorsDesc carries the inputs of a SHOW CONNECTORS statement. It
// is immutable once built.
type ShowConnectorsDesc struct {
	resFile    string
	pattern    string
	hasPattern bool
}

// NewShowConnectorsDesc canonicalizes resFile once and stores the pattern
// as given. A nil pattern means every connector is listed. The pattern is
// not validated here.
func NewShowConnectorsDesc(resFile Location, pattern *string) *ShowConnectorsDesc {
	d := &ShowConnectorsDesc{resFile: resFile.String()}
	if pattern != nil {
		d.pattern = *pattern
		d.hasPattern = true
	}
	return d
}

// Kind implements Desc.
func (d *ShowConnectorsDesc) Kind() Kind {
	return KindShowConnectors
}

// Pattern returns the name filter, or nil when none was given.
func (d *ShowConnectorsDesc) Pattern() *string {
	if !d.hasPattern {
		return nil
	}
	p := d.pattern
	return &p
}

// ResultDestination returns where the executor writes result rows.
func (d *ShowConnectorsDesc) ResultDestination() string {
	return d.resFile
}

// ExplainSpec returns the explain table shared by all SHOW CONNECTORS
// descriptors.
func (d *ShowConnectorsDesc) ExplainSpec() ExplainSpec {
	return showConnectorsExplain.clone()
}

// Schema returns ShowConnectorsSchema.
func (d *ShowConnectorsDesc) Schema() string {
	return ShowConnectorsSchema
}
