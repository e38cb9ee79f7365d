package entities

type ApiKey struct {
	ApiKey  string `db:"id"`
	Status  bool   `db:"status"`
	IsAdmin bool   `db:"is_admin"`
	Label   string `db:"label"`
}
