package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"shoetrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale() models.SaleRecord {
	return models.SaleRecord{
		ID:          "abcdef123456",
		ProductName: "Air Max Pulse",
		Variant:     models.Variant{Color: "Red/Black", Size: "42"},
		Quantity:    3,
		TotalPrice:  37500,
		Timestamp:   time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC),
	}
}

func testCompany() models.CompanyInfo {
	return models.CompanyInfo{
		Name:    "SoleTrack Elite Footwear",
		Address: "Shop No. 42, Galleria Market, New Delhi",
		Phone:   "+91 98765 43210",
	}
}

func TestRenderReceiptCommandFraming(t *testing.T) {
	data := RenderReceipt(testSale(), testCompany(), "₹")

	assert.True(t, bytes.HasPrefix(data, []byte{0x1B, 0x40, 0x1B, 0x61, 0x01}),
		"reset then center-align must open the stream")
	assert.True(t, bytes.HasSuffix(data, []byte{0x1D, 0x56, 0x41, 0x00}),
		"paper cut must close the stream")
}

func TestRenderReceiptLineLayout(t *testing.T) {
	data := RenderReceipt(testSale(), testCompany(), "₹")
	body := string(data[5 : len(data)-4])

	lines := strings.Split(body, "\n")
	require.GreaterOrEqual(t, len(lines), 13)

	assert.Equal(t, "SoleTrack Elite Footwear", lines[0])
	assert.Equal(t, "Shop No. 42, Galleria Market, New Delhi", lines[1])
	assert.Equal(t, "Tel: +91 98765 43210", lines[2])
	assert.Equal(t, "--------------------------------", lines[3])
	assert.Equal(t, "Bill: 123456  15/03/2024", lines[4])
	assert.Equal(t, "--------------------------------", lines[5])
	assert.Equal(t, "Air Max Pulse", lines[6])
	assert.Equal(t, "Red/Black / Sz: 42", lines[7])
	assert.Equal(t, "3 x ₹12500 = ₹37500", lines[8])
	assert.Equal(t, "--------------------------------", lines[9])
	assert.Equal(t, "TOTAL: ₹37500", lines[10])
	assert.Equal(t, "--------------------------------", lines[11])
	assert.Equal(t, "Thank you for shopping!", lines[12])
}

func TestRenderReceiptShortBillID(t *testing.T) {
	sale := testSale()
	sale.ID = "ab12"

	data := RenderReceipt(sale, testCompany(), "$")
	assert.Contains(t, string(data), "Bill: ab12")
}

func TestNopDeviceLifecycle(t *testing.T) {
	var d NopDevice
	ctx := context.Background()

	require.NoError(t, d.Acquire(ctx))
	require.NoError(t, d.Write(ctx, []byte("x")))
	require.NoError(t, d.Release())
}
