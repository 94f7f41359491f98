package db

import "testing"

func TestRetrieveCredentialsDoAmbiente(t *testing.T) {
	t.Setenv("DB_USERNAME", "frota")
	t.Setenv("DB_PASSWORD", "segredo")

	user, pass, err := retrieveCredentials("ignorado")
	if err != nil {
		t.Fatalf("retrieveCredentials: %v", err)
	}
	if user != "frota" || pass != "segredo" {
		t.Errorf("credenciais = %q/%q, quer frota/segredo", user, pass)
	}
}
