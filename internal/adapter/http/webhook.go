package httpadapter

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
)

const (
	headerShopifyHmac      = "X-Shopify-Hmac-Sha256"
	headerShopifyWebhookID = "X-Shopify-Webhook-Id"

	maxWebhookBody = 5 << 20
)

// handleOrderWebhook attributes a Shopify order to a campaign. It answers
// 200 "ok" for every payload it cannot or need not attribute so Shopify
// does not retry, and 500 only when the purchase increment failed to
// persist.
func (h *Handler) handleOrderWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn("read order webhook body", slog.Any("error", err))
		h.writeText(w, http.StatusOK, "ok")
		return
	}

	if h.webhookSecret != nil && !validShopifyHmac(h.webhookSecret, body, r.Header.Get(headerShopifyHmac)) {
		h.logger.Warn("order webhook rejected", slog.Any("error", port.ErrInvalidSignature))
		h.writeText(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var order domain.OrderNotification
	if err = json.Unmarshal(body, &order); err != nil {
		h.logger.Warn("undecodable order webhook, ignoring", slog.Any("error", err))
		h.writeText(w, http.StatusOK, "ok")
		return
	}

	if _, err = h.svc.RecordPurchase(r.Context(), order, r.Header.Get(headerShopifyWebhookID)); err != nil {
		h.logger.Error("order webhook error", slog.Int64("order_id", order.ID), slog.Any("error", err))
		h.writeText(w, http.StatusInternalServerError, "error")
		return
	}
	h.writeText(w, http.StatusOK, "ok")
}

// validShopifyHmac checks the base64 HMAC-SHA256 of body against the value
// Shopify sends in the X-Shopify-Hmac-Sha256 header.
func validShopifyHmac(secret, body []byte, header string) bool {
	got, err := base64.StdEncoding.DecodeString(header)
	if err != nil || len(got) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
