package entity

// TaxonomyCategory is one business-defined topic bucket that discovered
// clusters are matched against. The table is read-only configuration;
// the pipeline never mutates it.
type TaxonomyCategory struct {
	ID          string   `mapstructure:"id" json:"id"`
	Label       string   `mapstructure:"label" json:"label"`
	Description string   `mapstructure:"description" json:"description"`
	Keywords    []string `mapstructure:"keywords" json:"keywords"`
}
