package schema

// SystemSettingTable maps system.setting, editable site text keyed by a dotted name.
type SystemSettingTable struct {
	Table       string
	Key         string
	Value       string
	Description string
	UpdatedAt   string
}

var SystemSetting = SystemSettingTable{
	Table:       "system.setting",
	Key:         "key",
	Value:       "value",
	Description: "description",
	UpdatedAt:   "updatedat",
}
