package ingest

import (
	"strings"

	"github.com/stockpilot/wms-backend/pkg/enums"
)

// DetectPlatform inspects the file's column headers and returns the
// marketplace the export came from. Unknown is a valid result; callers
// decide whether to proceed.
func DetectPlatform(headers []string) enums.Platform {
	joined := strings.ToUpper(strings.Join(headers, " "))
	switch {
	case strings.Contains(joined, "FNSKU") || strings.Contains(joined, "FULFILLMENT CENTER"):
		return enums.PlatformAmazon
	case strings.Contains(joined, "ORDER ITEM ID") || strings.Contains(joined, "FSN"):
		return enums.PlatformFlipkart
	case strings.Contains(joined, "SUB ORDER NO"):
		return enums.PlatformMeesho
	default:
		return enums.PlatformUnknown
	}
}

// SKUColumn returns the header that carries the marketplace SKU for the
// detected platform. Amazon exports prefer FNSKU and fall back to MSKU;
// Flipkart and Meesho use SKU. A missing column is a structural problem
// with the file, so ok is false.
func SKUColumn(headers []string, platform enums.Platform) (string, bool) {
	has := func(name string) bool {
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return true
			}
		}
		return false
	}

	switch platform {
	case enums.PlatformAmazon:
		if has("FNSKU") {
			return "FNSKU", true
		}
		if has("MSKU") {
			return "MSKU", true
		}
	case enums.PlatformFlipkart, enums.PlatformMeesho:
		if has("SKU") {
			return "SKU", true
		}
	}
	return "", false
}
