// Command keys genera el par RSA que firma los access tokens.
// Escribe private.pem (PKCS#1) y public.pem; el kid derivado se imprime para
// cotejarlo contra el JWKS publicado.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	jwtx "github.com/mernspace/auth-service/internal/jwt"
)

func main() {
	var (
		flagDir     = flag.String("dir", "certs", "directorio de salida")
		flagBits    = flag.Int("bits", 2048, "tamaño de la clave RSA")
		flagForce   = flag.Bool("force", false, "sobreescribe claves existentes")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env")
	)
	flag.Parse()
	_ = godotenv.Load(*flagEnvFile)

	privPath := filepath.Join(*flagDir, "private.pem")
	pubPath := filepath.Join(*flagDir, "public.pem")

	if !*flagForce {
		if _, err := os.Stat(privPath); err == nil {
			log.Fatalf("%s ya existe (usar -force para sobreescribir)", privPath)
		}
	}
	if err := os.MkdirAll(*flagDir, 0o700); err != nil {
		log.Fatalf("mkdir %s: %v", *flagDir, err)
	}

	priv, err := rsa.GenerateKey(rand.Reader, *flagBits)
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		log.Fatalf("write %s: %v", privPath, err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		log.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
		log.Fatalf("write %s: %v", pubPath, err)
	}

	fmt.Printf("private: %s\npublic:  %s\nkid:     %s\n", privPath, pubPath, jwtx.KIDFor(&priv.PublicKey))
}
