package dom

// namedEntities maps an HTML named character reference (without the
// leading '&' and trailing ';') to its replacement text. Case-sensitive,
// matching the HTML specification.
var namedEntities = map[string]string{
	"amp": "&", "lt": "<", "gt": ">", "quot": "\"", "apos": "'", "nbsp": " ",

	"ensp": " ", "emsp": " ", "thinsp": " ",

	"mdash": "—", "ndash": "–", "lsquo": "‘", "rsquo": "’",
	"ldquo": "“", "rdquo": "”", "hellip": "…", "bull": "•",
	"middot": "·", "laquo": "«", "raquo": "»",

	"copy": "©", "reg": "®", "trade": "™", "times": "×",
	"divide": "÷", "plusmn": "±", "deg": "°", "micro": "µ",
	"para": "¶", "sect": "§", "cent": "¢", "pound": "£",
	"yen": "¥", "euro": "€", "curren": "¤",

	"larr": "←", "uarr": "↑", "rarr": "→", "darr": "↓", "harr": "↔",

	"frac14": "¼", "frac12": "½", "frac34": "¾", "ne": "≠",
	"le": "≤", "ge": "≥", "infin": "∞", "sum": "∑",
	"prod": "∏", "radic": "√", "minus": "−", "lowast": "∗",
	"sim": "∼", "asymp": "≈", "equiv": "≡", "fnof": "ƒ",

	"Agrave": "À", "Aacute": "Á", "Acirc": "Â", "Atilde": "Ã",
	"Auml": "Ä", "Aring": "Å", "AElig": "Æ", "Ccedil": "Ç",
	"Egrave": "È", "Eacute": "É", "Ecirc": "Ê", "Euml": "Ë",
	"Igrave": "Ì", "Iacute": "Í", "Icirc": "Î", "Iuml": "Ï",
	"ETH": "Ð", "Ntilde": "Ñ", "Ograve": "Ò", "Oacute": "Ó",
	"Ocirc": "Ô", "Otilde": "Õ", "Ouml": "Ö", "Oslash": "Ø",
	"Ugrave": "Ù", "Uacute": "Ú", "Ucirc": "Û", "Uuml": "Ü",
	"Yacute": "Ý", "THORN": "Þ",

	"szlig": "ß", "agrave": "à", "aacute": "á", "acirc": "â",
	"atilde": "ã", "auml": "ä", "aring": "å", "aelig": "æ",
	"ccedil": "ç", "egrave": "è", "eacute": "é", "ecirc": "ê",
	"euml": "ë", "igrave": "ì", "iacute": "í", "icirc": "î",
	"iuml": "ï", "eth": "ð", "ntilde": "ñ", "ograve": "ò",
	"oacute": "ó", "ocirc": "ô", "otilde": "õ", "ouml": "ö",
	"oslash": "ø", "ugrave": "ù", "uacute": "ú", "ucirc": "û",
	"uuml": "ü", "yacute": "ý", "thorn": "þ", "yuml": "ÿ",

	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ",
	"Epsilon": "Ε", "Zeta": "Ζ", "Eta": "Η", "Theta": "Θ",
	"Iota": "Ι", "Kappa": "Κ", "Lambda": "Λ", "Mu": "Μ",
	"Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο", "Pi": "Π",
	"Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ",
	"Phi": "Φ", "Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",

	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "omicron": "ο", "pi": "π",
	"rho": "ρ", "sigmaf": "ς", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "chi": "χ", "psi": "ψ",
	"omega": "ω",
}

// lookupEntity resolves a named HTML character reference (without the
// leading '&' and trailing ';'). Case-sensitive, matching the HTML spec.
func lookupEntity(name string) (string, bool) {
	s, ok := namedEntities[name]
	return s, ok
}
