package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/motormarket/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Walks an order through its whole life: checkout, ship, deliver, and
// verifies the transitions the state machine must refuse along the way.
func TestOrderLifecycle(t *testing.T) {
	s := NewTestServer(t)

	sellerToken, _ := s.Register(t, "AutoParts Hub", "seller")
	buyerToken, _ := s.Register(t, "Ali Raza", "buyer")
	adminToken := s.RegisterAdmin(t)

	productID := s.CreateProduct(t, sellerToken, "Brake Pads", "89.99", 50)
	s.AddToCart(t, buyerToken, productID, 2)

	w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, "/api/v1/checkout", buyerToken, shippingPayload("jazzcash"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
		Total   string `json:"total"`
	}
	testutil.DecodeData(t, env, &placed)
	require.Equal(t, "paid", placed.Status)
	assert.Equal(t, "694.38", placed.Total)

	orderPath := func(action string) string {
		return fmt.Sprintf("/api/v1/admin/orders/%s/%s", placed.OrderID, action)
	}

	t.Run("paid order cannot be delivered before shipping", func(t *testing.T) {
		w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, orderPath("deliver"), adminToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		testutil.RequireErrorCode(t, env, "INVALID_STATE")
	})

	t.Run("admin ships the order", func(t *testing.T) {
		w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, orderPath("ship"), adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Status string `json:"status"`
		}
		testutil.DecodeData(t, env, &resp)
		assert.Equal(t, "shipped", resp.Status)
	})

	t.Run("shipped order cannot be cancelled by the buyer", func(t *testing.T) {
		w, env := testutil.DoJSON(t, s.Engine, http.MethodPost,
			fmt.Sprintf("/api/v1/orders/%s/cancel", placed.OrderID), buyerToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		testutil.RequireErrorCode(t, env, "INVALID_STATE")
	})

	t.Run("admin delivers the order", func(t *testing.T) {
		w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, orderPath("deliver"), adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Status      string  `json:"status"`
			DeliveredAt *string `json:"delivered_at"`
		}
		testutil.DecodeData(t, env, &resp)
		assert.Equal(t, "delivered", resp.Status)
		assert.NotNil(t, resp.DeliveredAt)
	})

	t.Run("buyer sees the delivered order", func(t *testing.T) {
		w, env := testutil.DoJSON(t, s.Engine, http.MethodGet,
			"/api/v1/orders/"+placed.OrderID, buyerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Status string `json:"status"`
			City   string `json:"city"`
		}
		testutil.DecodeData(t, env, &resp)
		assert.Equal(t, "delivered", resp.Status)
		assert.Equal(t, "Lahore", resp.City)
	})

	t.Run("another buyer cannot read the order", func(t *testing.T) {
		otherToken, _ := s.Register(t, "Sara Khan", "buyer")
		w, env := testutil.DoJSON(t, s.Engine, http.MethodGet,
			"/api/v1/orders/"+placed.OrderID, otherToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		testutil.RequireErrorCode(t, env, "FORBIDDEN")
	})

	t.Run("admin listing filters by status", func(t *testing.T) {
		w, env := testutil.DoJSON(t, s.Engine, http.MethodGet,
			"/api/v1/admin/orders?status=delivered", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var orders []struct {
			ID string `json:"id"`
		}
		testutil.DecodeData(t, env, &orders)
		require.Len(t, orders, 1)
		assert.Equal(t, placed.OrderID, orders[0].ID)
	})
}

func TestOrderCancellation(t *testing.T) {
	s := NewTestServer(t)

	sellerToken, _ := s.Register(t, "AutoParts Hub", "seller")
	buyerToken, _ := s.Register(t, "Ali Raza", "buyer")

	productID := s.CreateProduct(t, sellerToken, "Oil Filter", "45.99", 10)
	s.AddToCart(t, buyerToken, productID, 1)

	w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, "/api/v1/checkout", buyerToken, shippingPayload("easypaisa"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		OrderID string `json:"order_id"`
	}
	testutil.DecodeData(t, env, &placed)

	w, env = testutil.DoJSON(t, s.Engine, http.MethodPost,
		"/api/v1/orders/"+placed.OrderID+"/cancel", buyerToken,
		map[string]string{"reason": "ordered the wrong part"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status       string `json:"status"`
		CancelReason string `json:"cancel_reason"`
	}
	testutil.DecodeData(t, env, &resp)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "ordered the wrong part", resp.CancelReason)
}
