// Command authctl es el CLI de administración: pega contra la API HTTP del
// servicio con un access token de un usuario admin.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	// Idempotency key por request: el server la loguea para correlacionar reintentos.
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("AUTHCTL_URL", "http://localhost:5501")
		token   = envOr("AUTHCTL_TOKEN", "")
		out     = envOr("AUTHCTL_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "authctl",
		Short: "CLI admin del auth service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("falta access token (flag --token o env AUTHCTL_TOKEN)")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env AUTHCTL_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "access token admin (env AUTHCTL_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "formato de salida: json|text")

	cl := &client{BaseURL: baseURL, Token: token, OutFormat: out, HTTP: &http.Client{Timeout: 30 * time.Second}}

	// ----- tenants -----
	tenantCmd := &cobra.Command{Use: "tenant", Short: "Gestión de tenants"}

	var tenantName, tenantAddress string
	tenantCreate := &cobra.Command{
		Use:   "create",
		Short: "Crea un tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{"name": tenantName, "address": tenantAddress})
			status, b, err := cl.do(http.MethodPost, "/tenants", body)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}
	tenantCreate.Flags().StringVar(&tenantName, "name", "", "nombre del tenant")
	tenantCreate.Flags().StringVar(&tenantAddress, "address", "", "dirección del tenant")
	_ = tenantCreate.MarkFlagRequired("name")
	_ = tenantCreate.MarkFlagRequired("address")

	var listQ string
	var listPage, listPerPage int
	tenantList := &cobra.Command{
		Use:   "list",
		Short: "Lista tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/tenants?q=%s&currentPage=%d&perPage=%d", listQ, listPage, listPerPage)
			status, b, err := cl.do(http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}
	tenantList.Flags().StringVar(&listQ, "q", "", "texto de búsqueda")
	tenantList.Flags().IntVar(&listPage, "page", 1, "página")
	tenantList.Flags().IntVar(&listPerPage, "per-page", 6, "resultados por página")

	tenantCmd.AddCommand(tenantCreate, tenantList)

	// ----- users -----
	userCmd := &cobra.Command{Use: "user", Short: "Gestión de usuarios"}

	var userRole, userQ string
	var userPage, userPerPage int
	userList := &cobra.Command{
		Use:   "list",
		Short: "Lista usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/users?q=%s&role=%s&currentPage=%d&perPage=%d", userQ, userRole, userPage, userPerPage)
			status, b, err := cl.do(http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}
	userList.Flags().StringVar(&userQ, "q", "", "texto de búsqueda")
	userList.Flags().StringVar(&userRole, "role", "", "filtrar por rol")
	userList.Flags().IntVar(&userPage, "page", 1, "página")
	userList.Flags().IntVar(&userPerPage, "per-page", 6, "resultados por página")

	var uFirst, uLast, uEmail, uPassword, uRole string
	var uTenant int64
	userCreate := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario con rol",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"firstName": uFirst,
				"lastName":  uLast,
				"email":     uEmail,
				"password":  uPassword,
				"role":      uRole,
			}
			if uTenant > 0 {
				payload["tenantId"] = uTenant
			}
			body, _ := json.Marshal(payload)
			status, b, err := cl.do(http.MethodPost, "/users", body)
			if err != nil {
				return err
			}
			cl.print(status, b)
			return nil
		},
	}
	userCreate.Flags().StringVar(&uFirst, "first-name", "", "nombre")
	userCreate.Flags().StringVar(&uLast, "last-name", "", "apellido")
	userCreate.Flags().StringVar(&uEmail, "email", "", "email")
	userCreate.Flags().StringVar(&uPassword, "password", "", "password")
	userCreate.Flags().StringVar(&uRole, "role", "manager", "rol (admin|manager|customer)")
	userCreate.Flags().Int64Var(&uTenant, "tenant", 0, "tenant id (requerido para no-admin)")
	_ = userCreate.MarkFlagRequired("first-name")
	_ = userCreate.MarkFlagRequired("last-name")
	_ = userCreate.MarkFlagRequired("email")
	_ = userCreate.MarkFlagRequired("password")

	userCmd.AddCommand(userList, userCreate)

	root.AddCommand(tenantCmd, userCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
