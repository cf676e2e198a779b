package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-service-backend/config"
	"fleet-service-backend/internal/api"
	"fleet-service-backend/internal/auth"
	"fleet-service-backend/internal/db"
	"fleet-service-backend/internal/model"
	"fleet-service-backend/internal/store"
)

// TestFleetLifecycle walks the whole surface end to end through HTTP:
// a manager seeds the catalog, machines arrive with a client and a
// service company attached, the service company files a claim, and
// every role sees exactly its slice of the fleet.
func TestFleetLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:fleet_lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
			PageSize:        2, // small default page to exercise export
			MaxPageSize:     500,
		},
		Auth: config.AuthConfig{
			Secret:     "integration-secret",
			AccessTTL:  time.Hour,
			RefreshTTL: 24 * time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		Bootstrap: config.BootstrapConfig{
			ManagerUsername: "boss",
			ManagerPassword: "bosspass",
		},
	}
	require.NoError(t, db.Bootstrap(context.Background(), gdb, cfg))

	s := store.NewGormStore(gdb)
	issuer := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	router := api.NewRouter(s, issuer, cfg)

	call := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}
	login := func(username, password string) string {
		w := call(http.MethodPost, "/api/auth/token", "",
			`{"username":"`+username+`","password":"`+password+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var pair struct {
			Access string `json:"access"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
		return pair.Access
	}

	// The bootstrapped manager can log in straight away.
	managerToken := login("boss", "bosspass")

	// Remaining accounts are seeded directly.
	hash, err := auth.HashPassword("secret", cfg.Auth.BcryptCost)
	require.NoError(t, err)
	client := model.User{Username: "client", PasswordHash: hash, Role: model.RoleClient}
	service := model.User{Username: "service", PasswordHash: hash, Role: model.RoleService}
	require.NoError(t, gdb.Create(&client).Error)
	require.NoError(t, gdb.Create(&service).Error)
	clientToken := login("client", "secret")
	serviceToken := login("service", "secret")

	// Manager fills the catalog over the API.
	catalog := map[string]uint{}
	for _, item := range []struct{ category, name string }{
		{"machine_model", "FD-1.5"},
		{"engine_model", "Engine X"},
		{"transmission_model", "Trans X"},
		{"drive_axle_model", "Drive Axle X"},
		{"steer_axle_model", "Steer Axle X"},
		{"failure_node", "Engine"},
		{"repair_method", "Part replacement"},
	} {
		w := call(http.MethodPost, "/api/references", managerToken,
			`{"category":"`+item.category+`","name":"`+item.name+`"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created model.ReferenceItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		catalog[item.category] = created.ID
	}

	newMachine := func(serial string, clientID, serviceID *uint) model.Machine {
		return model.Machine{
			SerialNumber:        serial,
			MachineModelID:      catalog["machine_model"],
			EngineModelID:       catalog["engine_model"],
			TransmissionModelID: catalog["transmission_model"],
			DriveAxleModelID:    catalog["drive_axle_model"],
			SteerAxleModelID:    catalog["steer_axle_model"],
			ClientID:            clientID,
			ServiceCompanyID:    serviceID,
		}
	}
	owned := newMachine("FD-1001", &client.ID, &service.ID)
	stray := newMachine("FD-1002", nil, nil)
	other := newMachine("FD-1003", nil, nil)
	for _, m := range []*model.Machine{&owned, &stray, &other} {
		require.NoError(t, gdb.Create(m).Error)
	}

	t.Run("each role sees its slice of the fleet", func(t *testing.T) {
		cases := []struct {
			token string
			want  int
		}{
			{managerToken, 3},
			{clientToken, 1},
			{serviceToken, 1},
		}
		for _, tc := range cases {
			w := call(http.MethodGet, "/api/machines?export=1", tc.token, "")
			require.Equal(t, http.StatusOK, w.Code)
			var machines []json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &machines))
			assert.Len(t, machines, tc.want)
		}
	})

	t.Run("default page size caps the manager listing", func(t *testing.T) {
		w := call(http.MethodGet, "/api/machines", managerToken, "")
		require.Equal(t, http.StatusOK, w.Code)
		var machines []json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &machines))
		assert.Len(t, machines, 2)
	})

	t.Run("service files a claim and downtime is derived", func(t *testing.T) {
		payload, err := json.Marshal(map[string]any{
			"machine_id":          owned.ID,
			"failure_date":        "2024-03-01",
			"recovery_date":       "2024-03-08",
			"failure_node_id":     catalog["failure_node"],
			"failure_description": "engine stall",
			"repair_method_id":    catalog["repair_method"],
		})
		require.NoError(t, err)

		w := call(http.MethodPost, "/api/claims", serviceToken, string(payload))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var claim struct {
			Downtime       *int64 `json:"downtime"`
			ServiceCompany *struct {
				Username string `json:"username"`
			} `json:"service_company"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claim))
		require.NotNil(t, claim.Downtime)
		assert.Equal(t, int64(7), *claim.Downtime)
		require.NotNil(t, claim.ServiceCompany)
		assert.Equal(t, "service", claim.ServiceCompany.Username)
	})

	t.Run("client reads the claim but cannot file one", func(t *testing.T) {
		w := call(http.MethodGet, "/api/claims", clientToken, "")
		require.Equal(t, http.StatusOK, w.Code)
		var claims []json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &claims))
		assert.Len(t, claims, 1)

		payload := `{"machine_id":` + jsonID(owned.ID) + `,"failure_date":"2024-03-02",` +
			`"failure_node_id":` + jsonID(catalog["failure_node"]) + `,` +
			`"failure_description":"x","repair_method_id":` + jsonID(catalog["repair_method"]) + `}`
		w = call(http.MethodPost, "/api/claims", clientToken, payload)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous serial lookup works without a token", func(t *testing.T) {
		w := call(http.MethodGet, "/api/public/machines/search?serial=FD-1001", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "FD-1001", body["serial_number"])
		assert.NotContains(t, body, "client")
		assert.NotContains(t, body, "service_company")
	})

	t.Run("catalog item in use refuses deletion", func(t *testing.T) {
		w := call(http.MethodDelete, "/api/references/"+jsonID(catalog["machine_model"]), managerToken, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func jsonID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
