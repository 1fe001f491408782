package services

import (
	"regexp"
	"strconv"
	"strings"

	"catalog-sim/models"
)

const cmPerInch = 2.54

var (
	ramRegexp     = regexp.MustCompile(`(\d+)\s*gb\s*ram`)
	storageRegexp = regexp.MustCompile(`(?:internal storage|storage|rom)\s*(\d+)\s*gb`)
	// storageSuffixRegexp handles listings written as "64 GB ROM".
	storageSuffixRegexp = regexp.MustCompile(`(\d+)\s*gb\s*(?:internal storage|storage|rom)`)
	batteryRegexp       = regexp.MustCompile(`(\d+)\s*mah`)
	displayRegexp       = regexp.MustCompile(`display size\s*[:\-]?\s*(\d+\.?\d*)\s*(cm|inch|in)?`)
	procBrandRegexp     = regexp.MustCompile(`processor brand\s*[:\-]?\s*([a-z0-9\s]+)`)
	procTypeRegexp      = regexp.MustCompile(`processor type\s*[:\-]?\s*([a-z0-9\s]+)`)
)

// ExtractSpecs pulls hardware attributes out of a free-text feature description.
// Each attribute is matched independently; an unmatched one stays nil.
func ExtractSpecs(features string) models.ProductSpecs {
	text := strings.ToLower(features)

	specs := models.ProductSpecs{
		RAMGB:          matchInt(ramRegexp, text),
		BatteryMAh:     matchInt(batteryRegexp, text),
		DisplayInch:    matchDisplay(text),
		ProcessorBrand: matchText(procBrandRegexp, text),
		ProcessorType:  matchText(procTypeRegexp, text),
	}

	specs.StorageGB = matchInt(storageRegexp, text)
	if specs.StorageGB == nil {
		specs.StorageGB = matchInt(storageSuffixRegexp, text)
	}

	return specs
}

func matchInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func matchText(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	s := strings.TrimSpace(m[1])
	return &s
}

// matchDisplay returns the display diagonal in inches, converting from cm when labelled so.
func matchDisplay(text string) *float64 {
	m := displayRegexp.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	if len(m) > 2 && strings.Contains(m[2], "cm") {
		size = size / cmPerInch
	}
	size = round2(size)
	return &size
}
