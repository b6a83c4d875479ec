package domain

// Carrier identifies a supported courier service.
type Carrier string

const (
	// CarrierDHL is DHL (Parcel and Express, global).
	CarrierDHL Carrier = "dhl"
	// CarrierGLS is GLS Group (Europe).
	CarrierGLS Carrier = "gls"
	// CarrierDPD is DPD Group (Europe).
	CarrierDPD Carrier = "dpd"
	// CarrierEvri is Evri, formerly Hermes (UK).
	CarrierEvri Carrier = "evri"
	// CarrierAnPost is An Post (Ireland).
	CarrierAnPost Carrier = "an_post"
	// CarrierPacketa is Packeta / Zasilkovna (Czech Republic).
	CarrierPacketa Carrier = "packeta"
	// CarrierPocztaPolska is Poczta Polska (Poland).
	CarrierPocztaPolska Carrier = "poczta_polska"
	// CarrierSameday is Sameday (Romania).
	CarrierSameday Carrier = "sameday"
	// CarrierNovaPoshta is Nova Poshta (Ukraine).
	CarrierNovaPoshta Carrier = "nova_poshta"
	// CarrierUkrposhta is Ukrposhta (Ukraine).
	CarrierUkrposhta Carrier = "ukrposhta"
	// CarrierMagyarPosta is Magyar Posta (Hungary).
	CarrierMagyarPosta Carrier = "magyar_posta"
	// CarrierPosteItaliane is Poste Italiane (Italy).
	CarrierPosteItaliane Carrier = "poste_italiane"
)

var carrierLabels = map[Carrier]string{
	CarrierDHL:           "DHL",
	CarrierGLS:           "GLS",
	CarrierDPD:           "DPD",
	CarrierEvri:          "Evri",
	CarrierAnPost:        "An Post",
	CarrierPacketa:       "Packeta",
	CarrierPocztaPolska:  "Poczta Polska",
	CarrierSameday:       "Sameday",
	CarrierNovaPoshta:    "Nova Poshta",
	CarrierUkrposhta:     "Ukrposhta",
	CarrierMagyarPosta:   "Magyar Posta",
	CarrierPosteItaliane: "Poste Italiane",
}

// Label returns the human-readable name of the carrier.
func (c Carrier) Label() string {
	if label, ok := carrierLabels[c]; ok {
		return label
	}
	return string(c)
}

// Carriers returns every supported carrier in detection priority order:
// carriers with distinctive tracking-ID formats come first, carriers that
// only accept generic digit-count formats come last. The order drives the
// candidate list shown to the user when formats overlap.
func Carriers() []Carrier {
	return []Carrier{
		CarrierPacketa,
		CarrierNovaPoshta,
		CarrierPocztaPolska,
		CarrierMagyarPosta,
		CarrierAnPost,
		CarrierUkrposhta,
		CarrierDHL,
		CarrierGLS,
		CarrierDPD,
		CarrierEvri,
		CarrierSameday,
		CarrierPosteItaliane,
	}
}
