package config

type Migrate struct {
	Reset bool `env:"MIGRATE_RESET" envDefault:"false"`
}
