package address

import (
	"strings"
	"unicode"
)

// countryCodes maps folded country names (English and Spanish) to ISO 3166-1 alpha-2.
var countryCodes = map[string]string{
	"spain": "ES", "espana": "ES", "reino de espana": "ES",
	"united states": "US", "united states of america": "US", "usa": "US", "estados unidos": "US", "eeuu": "US",
	"mexico": "MX", "argentina": "AR", "chile": "CL", "colombia": "CO", "peru": "PE",
	"venezuela": "VE", "ecuador": "EC", "bolivia": "BO", "uruguay": "UY", "paraguay": "PY",
	"brazil": "BR", "brasil": "BR", "cuba": "CU", "costa rica": "CR", "panama": "PA",
	"guatemala": "GT", "honduras": "HN", "el salvador": "SV", "nicaragua": "NI",
	"dominican republic": "DO", "republica dominicana": "DO", "puerto rico": "PR",
	"canada": "CA", "united kingdom": "GB", "reino unido": "GB", "uk": "GB", "great britain": "GB",
	"england": "GB", "inglaterra": "GB", "ireland": "IE", "irlanda": "IE",
	"france": "FR", "francia": "FR", "germany": "DE", "alemania": "DE",
	"italy": "IT", "italia": "IT", "portugal": "PT", "netherlands": "NL", "paises bajos": "NL", "holanda": "NL",
	"belgium": "BE", "belgica": "BE", "switzerland": "CH", "suiza": "CH", "austria": "AT",
	"sweden": "SE", "suecia": "SE", "norway": "NO", "noruega": "NO", "denmark": "DK", "dinamarca": "DK",
	"finland": "FI", "finlandia": "FI", "poland": "PL", "polonia": "PL", "greece": "GR", "grecia": "GR",
	"andorra": "AD", "morocco": "MA", "marruecos": "MA",
	"china": "CN", "japan": "JP", "japon": "JP", "south korea": "KR", "corea del sur": "KR",
	"india": "IN", "australia": "AU", "new zealand": "NZ", "nueva zelanda": "NZ",
	"taiwan": "TW", "singapore": "SG", "singapur": "SG",
	"south africa": "ZA", "sudafrica": "ZA", "united arab emirates": "AE", "emiratos arabes unidos": "AE",
	"turkey": "TR", "turquia": "TR", "russia": "RU", "rusia": "RU", "israel": "IL",
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u", "ç", "c",
)

// CountryCode infers the ISO-2 code for a country name. Names missing from the
// table fall back to their first two letters upper-cased. The fallback is
// lossy (an unlisted "Österreich" yields "ÖS"); stored keys depend on it, so
// it must not change.
func CountryCode(country string) string {
	name := strings.TrimSpace(country)
	if name == "" {
		return ""
	}

	lookup := strings.Join(strings.FieldsFunc(accentFolder.Replace(strings.ToLower(name)), func(r rune) bool {
		return !unicode.IsLetter(r)
	}), " ")
	if code, ok := countryCodes[lookup]; ok {
		return code
	}

	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}

	return strings.ToUpper(string(runes))
}
