package secrets_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lone-faerie/tempconv/config/secrets"
)

func Example() {
	dir, err := os.MkdirTemp("", "secrets")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	secrets.Dir = dir

	err = os.WriteFile(filepath.Join(dir, "broker_password"), []byte("p@55w0rd\n"), 0600)
	if err != nil {
		log.Fatal(err)
	}

	s, ok := secrets.CutPrefix("!secret broker_password")
	if !ok {
		log.Fatal(s, " is not a secret")
	}
	secret, err := secrets.Read(s)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(secret)
	fmt.Println(secrets.MustRead("missing", "fallback"))
	// Output:
	// p@55w0rd
	// fallback
}
