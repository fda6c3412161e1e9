package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avanwijk/portfolio-analyzer-backend/internal/model"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/service"
	"github.com/avanwijk/portfolio-analyzer-backend/internal/testutil"
)

func setupPortfolioHandler(t *testing.T) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := NewPortfolioHandler(
		testutil.NewTestPortfolioService(t, db),
		service.NewMetricsService(),
		testutil.NewTestAuthService(t, db),
	)
	return handler, db
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates a portfolio and returns 201", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", map[string]string{
			"userId": user.ID,
			"name":   "Retirement",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[model.Portfolio](t, w)
		if response.ID == "" {
			t.Error("Expected a generated portfolio ID")
		}
		if response.UserID != user.ID {
			t.Errorf("Expected owner %s, got %s", user.ID, response.UserID)
		}
	})

	t.Run("returns 404 for an unknown user", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", map[string]string{
			"userId": testutil.MakeID(),
			"name":   "Retirement",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a missing name", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", map[string]string{
			"userId": user.ID,
			"name":   "",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	t.Run("returns the valuation snapshot", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)
		testutil.CreateLot(t, db, portfolio.ID, "AAPL", 10, 100)
		testutil.CreateQuote(t, db, "AAPL", 150)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[model.ValuationSnapshot](t, w)
		if response.TotalValue != 1500 {
			t.Errorf("Expected total value 1500, got %v", response.TotalValue)
		}
		if len(response.Holdings) != 1 {
			t.Errorf("Expected 1 holding, got %d", len(response.Holdings))
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetPortfolio(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_GetPortfoliosForUser(t *testing.T) {
	t.Run("lists only the user's portfolios", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		alice := testutil.NewUser().Build(t, db)
		bob := testutil.NewUser().Build(t, db)
		mine := testutil.NewPortfolio(alice.ID).Build(t, db)
		testutil.NewPortfolio(bob.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/user/"+alice.ID,
			map[string]string{"uuid": alice.ID})
		w := httptest.NewRecorder()

		handler.GetPortfoliosForUser(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[[]model.Portfolio](t, w)
		if len(response) != 1 || response[0].ID != mine.ID {
			t.Errorf("Expected only alice's portfolio, got %+v", response)
		}
	})
}

func TestPortfolioHandler_AddHolding(t *testing.T) {
	t.Run("appends a lot and returns 201", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/"+portfolio.ID+"/holding",
			map[string]any{
				"symbol":        "AAPL",
				"quantity":      10,
				"purchasePrice": 100,
				"purchaseDate":  "2024-01-15",
			},
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.AddHolding(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[model.Lot](t, w)
		if response.PortfolioID != portfolio.ID {
			t.Errorf("Expected portfolio %s, got %s", portfolio.ID, response.PortfolioID)
		}
	})

	t.Run("returns 400 for a negative quantity", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/"+portfolio.ID+"/holding",
			map[string]any{
				"symbol":        "AAPL",
				"quantity":      -1,
				"purchasePrice": 100,
				"purchaseDate":  "2024-01-15",
			},
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.AddHolding(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio/"+id+"/holding",
			map[string]any{
				"symbol":        "AAPL",
				"quantity":      10,
				"purchasePrice": 100,
				"purchaseDate":  "2024-01-15",
			},
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.AddHolding(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_GetMetrics(t *testing.T) {
	t.Run("returns metrics for a populated portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)
		testutil.CreateLot(t, db, portfolio.ID, "AAPL", 10, 100)
		testutil.CreateQuote(t, db, "AAPL", 150)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/metrics",
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetMetrics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[MetricsResponse](t, w)
		if response.RiskLevel != "High" {
			t.Errorf("Expected High risk for an all-tech portfolio, got %s", response.RiskLevel)
		}
		if response.SectorAllocation["Technology"] != 1500 {
			t.Errorf("Expected Technology allocation 1500, got %v", response.SectorAllocation["Technology"])
		}
	})

	t.Run("returns an empty object for a portfolio without holdings", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/metrics",
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetMetrics(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[map[string]any](t, w)
		if len(response) != 0 {
			t.Errorf("Expected an empty object, got %v", response)
		}
	})

	t.Run("returns 404 for an unknown portfolio", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id+"/metrics",
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetMetrics(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_GetRecommendations(t *testing.T) {
	t.Run("uses the owner's risk profile", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().WithRiskProfile(model.RiskProfileConservative).Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)
		// All financial, no bonds: triggers the conservative bond rule only.
		testutil.CreateLot(t, db, portfolio.ID, "JPM", 10, 100)
		testutil.CreateQuote(t, db, "JPM", 120)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/recommendations",
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetRecommendations(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[[]model.Recommendation](t, w)
		if len(response) != 1 || response[0].Type != "Diversification" {
			t.Errorf("Expected the diversification recommendation, got %+v", response)
		}
	})

	t.Run("returns an empty list for an empty portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)
		portfolio := testutil.NewPortfolio(user.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/recommendations",
			map[string]string{"uuid": portfolio.ID})
		w := httptest.NewRecorder()

		handler.GetRecommendations(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[[]model.Recommendation](t, w)
		if len(response) != 0 {
			t.Errorf("Expected no recommendations, got %+v", response)
		}
	})
}

func TestPortfolioHandler_GetRiskProfiles(t *testing.T) {
	t.Run("returns the three static profiles", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/riskprofile", nil)
		w := httptest.NewRecorder()

		handler.GetRiskProfiles(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSONResponse[map[string]model.RiskProfileTarget](t, w)
		if len(response) != 3 {
			t.Fatalf("Expected 3 profiles, got %d", len(response))
		}
		if response["conservative"].Bonds != 50 {
			t.Errorf("Expected conservative bonds 50, got %v", response["conservative"].Bonds)
		}
	})
}
