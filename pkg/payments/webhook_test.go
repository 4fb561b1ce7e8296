package payments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTransaction() WebhookTransaction {
	return WebhookTransaction{
		AmountCents:          150000,
		CreatedAt:            "2025-03-01T10:00:00",
		Currency:             "RUB",
		ErrorOccured:         false,
		HasParentTransaction: false,
		ID:                   987654,
		IntegrationID:        11,
		Is3DSecure:           true,
		IsAuth:               false,
		IsCapture:            false,
		IsRefunded:           false,
		IsStandalonePayment:  true,
		IsVoided:             false,
		Order:                WebhookOrder{ID: 555, MerchantOrderID: "abc-123"},
		Owner:                42,
		Pending:              false,
		SourceData:           WebhookSourceData{Pan: "2346", SubType: "MasterCard", Type: "card"},
		Success:              true,
	}
}

func TestConcatFieldsOrder(t *testing.T) {
	got := ConcatFields(sampleTransaction())
	want := "1500002025-03-01T10:00:00RUBfalsefalse98765411truefalsefalsefalsetruefalse555" +
		"42false2346MasterCardcardtrue"
	assert.Equal(t, want, got)
}

func TestConcatFieldsIgnoresMerchantOrderID(t *testing.T) {
	a := sampleTransaction()
	b := sampleTransaction()
	b.Order.MerchantOrderID = "другой"
	assert.Equal(t, ConcatFields(a), ConcatFields(b))
}

func TestVerifyHMACRoundTrip(t *testing.T) {
	tr := sampleTransaction()
	secret := "top-secret"
	sig := CalculateHMAC(tr, secret)
	assert.Len(t, sig, 128) // hex от sha512
	assert.True(t, VerifyHMAC(tr, secret, sig))
	assert.True(t, strings.ToLower(sig) == sig)
}

func TestVerifyHMACRejectsMutation(t *testing.T) {
	secret := "top-secret"
	sig := CalculateHMAC(sampleTransaction(), secret)

	mutated := sampleTransaction()
	mutated.AmountCents = 1
	assert.False(t, VerifyHMAC(mutated, secret, sig))

	mutated = sampleTransaction()
	mutated.Success = false
	assert.False(t, VerifyHMAC(mutated, secret, sig))

	mutated = sampleTransaction()
	mutated.SourceData.Pan = "0000"
	assert.False(t, VerifyHMAC(mutated, secret, sig))
}

func TestVerifyHMACRejectsWrongSecretOrSignature(t *testing.T) {
	tr := sampleTransaction()
	sig := CalculateHMAC(tr, "top-secret")
	assert.False(t, VerifyHMAC(tr, "другой-секрет", sig))
	assert.False(t, VerifyHMAC(tr, "top-secret", ""))
	assert.False(t, VerifyHMAC(tr, "top-secret", strings.Repeat("0", 128)))
}
