package rules

import (
	"fmt"

	"compliscan/scan-engine/internal/matcher"
	"compliscan/scan-engine/internal/model"
)

// Standard codes served by the builtin catalog.
const (
	StdPCIDSS = "PCI-DSS"
	StdRBI    = "RBI"
	StdDPDP   = "DPDP"
	StdSEBI   = "SEBI"
	StdGDPR   = "GDPR"
	StdPSD2   = "PSD2"
)

type matcherKind int

const (
	kindRegex matcherKind = iota
	kindCardNumber
	kindCVVProximity
	kindEntropy
)

// catalogDef is the compact table form a builtin rule is declared in; each
// entry is compiled into a Rule by buildCatalog.
type catalogDef struct {
	id          string
	category    string
	severity    model.Severity
	standards   []string
	kind        matcherKind
	patterns    []string
	description string
	remediation string
	sensitive   bool
}

var builtinDefs = []catalogDef{
	{
		id: "PCI-3.4", category: "Cardholder Data Protection",
		severity: model.SeverityCritical, standards: []string{StdPCIDSS, StdRBI},
		kind:        kindCardNumber,
		description: "Card number exposed in source; card numbers must be masked or encrypted",
		remediation: "Use tokenization or encryption for card data. Never store full card numbers.",
		sensitive:   true,
	},
	{
		id: "PCI-3.2", category: "Sensitive Authentication Data",
		severity: model.SeverityCritical, standards: []string{StdPCIDSS},
		kind:        kindCVVProximity,
		description: "CVV/CVC value present in source; sensitive authentication data must never be stored",
		remediation: "Never store CVV/CVC. Use payment gateway tokenization.",
	},
	{
		id: "SEC-001", category: "Credential Storage",
		severity: model.SeverityCritical, standards: []string{StdPCIDSS, StdRBI, StdDPDP, StdSEBI, StdGDPR},
		kind: kindRegex,
		patterns: []string{
			`(?i)\b(password|passwd|pwd)\s*[:=]{1,2}\s*["'][^"']+["']`,
		},
		description: "Hardcoded credential detected",
		remediation: "Use environment variables or secret management (Vault, AWS Secrets Manager).",
		sensitive:   true,
	},
	{
		id: "SEC-002", category: "Credential Storage",
		severity: model.SeverityCritical, standards: []string{StdPCIDSS, StdSEBI},
		kind: kindRegex,
		patterns: []string{
			`\bsk_(live|test)_[A-Za-z0-9]{8,}`,
		},
		description: "Payment provider API key committed to source",
		remediation: "Revoke the key immediately and load keys from the environment.",
		sensitive:   true,
	},
	{
		id: "PCI-6.5.1", category: "Injection Prevention",
		severity: model.SeverityHigh, standards: []string{StdPCIDSS, StdSEBI},
		kind: kindRegex,
		patterns: []string{
			`(?i)f["'][^"']*\b(select|insert|update|delete)\b[^"']*\{`,
			`(?i)\bexecute\s*\([^)]*(%s|%d|\+)`,
			`(?i)["'][^"']*\b(select|insert|update|delete)\b[^"']*["']\s*(\+|%[^=]|\.format\()`,
			`(?i)(\+|%)\s*["'][^"']*\b(select|insert|update|delete)\b`,
		},
		description: "SQL query built with string interpolation or concatenation",
		remediation: "Use parameterized queries or an ORM. Never concatenate user input into SQL.",
	},
	{
		id: "PCI-4.1", category: "Encryption in Transit",
		severity: model.SeverityHigh, standards: []string{StdPCIDSS, StdRBI},
		kind: kindRegex,
		patterns: []string{
			`http://[A-Za-z0-9.-]+`,
			`(?i)\bverify\s*=\s*False\b`,
			`(?i)\bssl\s*=\s*False\b`,
		},
		description: "Insecure transport: plaintext HTTP or disabled TLS verification",
		remediation: "Use HTTPS/TLS 1.2+ for all data transmission. Never disable SSL verification.",
	},
	{
		id: "SEC-005", category: "Cryptography",
		severity: model.SeverityHigh, standards: []string{StdPCIDSS, StdSEBI, StdRBI},
		kind: kindRegex,
		patterns: []string{
			`(?i)\b(md5|sha1)\s*\(`,
			`\bDES\.`,
			`\bRC4\b`,
		},
		description: "Weak or deprecated cryptographic algorithm",
		remediation: "Use SHA-256 or stronger for hashing, AES-256 for encryption.",
	},
	{
		id: "SEC-007", category: "Secret Exposure",
		severity: model.SeverityHigh, standards: []string{StdPCIDSS, StdDPDP, StdGDPR},
		kind:        kindEntropy,
		description: "High-entropy string literal looks like an exposed secret",
		remediation: "Move secrets out of source into a secret manager and rotate the exposed value.",
		sensitive:   true,
	},
	{
		id: "SEC-010", category: "Deserialization",
		severity: model.SeverityHigh, standards: []string{StdPCIDSS, StdSEBI},
		kind: kindRegex,
		patterns: []string{
			`(?i)\bpickle\.loads?\s*\(`,
			`(?i)\byaml\.(unsafe_load|load)\s*\(`,
			`\bmarshal\.loads\b`,
		},
		description: "Insecure deserialization of untrusted data",
		remediation: "Use safe deserialization methods and validate input before decoding.",
	},
	{
		id: "RBI-DL-1", category: "Data Localization",
		severity: model.SeverityCritical, standards: []string{StdRBI},
		kind: kindRegex,
		patterns: []string{
			`(?i)region\s*[:=]{1,2}\s*["'](us|eu)-`,
			`\.s3\.amazonaws\.com`,
		},
		description: "Payment data routed to a non-Indian region",
		remediation: "Use Indian data centers (ap-south-1 for AWS, asia-south1 for GCP).",
	},
	{
		id: "PSD2-SCA-2", category: "Strong Customer Authentication",
		severity: model.SeverityCritical, standards: []string{StdPSD2},
		kind: kindRegex,
		patterns: []string{
			`(?i)\b(static_otp|reusable_token|fixed_auth_code)\b`,
		},
		description: "Authentication code is not dynamically linked to amount and payee",
		remediation: "Generate authentication codes dynamically linked to amount and recipient.",
	},
	{
		id: "DPDP-LOG-1", category: "Personal Data Handling",
		severity: model.SeverityMedium, standards: []string{StdDPDP, StdGDPR},
		kind: kindRegex,
		patterns: []string{
			`(?i)\b(log(ger)?|logging|print|console\.log)\s*[.(][^)\n]*\b(aadhaar|pan_number|ssn|date_of_birth|dob)\b`,
		},
		description: "Personal identifiers written to logs",
		remediation: "Mask or drop personal identifiers before logging.",
	},
	{
		id: "SEBI-AUD-1", category: "Audit Trail",
		severity: model.SeverityMedium, standards: []string{StdSEBI},
		kind: kindRegex,
		patterns: []string{
			`(?i)\baudit(_log|_trail)?\s*[:=]{1,2}\s*(False|false|None|nil|0)\b`,
			`(?i)\bdisable_audit\b`,
		},
		description: "Audit trail disabled for regulated operations",
		remediation: "Keep audit logging enabled; retention is mandatory for regulated flows.",
	},
	{
		id: "SEC-011", category: "Access Control",
		severity: model.SeverityMedium, standards: []string{StdPCIDSS, StdGDPR},
		kind: kindRegex,
		patterns: []string{
			`allow_origins\s*=\s*\[?\s*["']\*["']`,
			`(?i)Access-Control-Allow-Origin["']?\s*[,:]\s*["']\*`,
		},
		description: "CORS configured with a wildcard origin",
		remediation: "Restrict allowed origins to an explicit list.",
	},
	{
		id: "SEC-012", category: "Configuration",
		severity: model.SeverityLow, standards: []string{StdPCIDSS, StdSEBI, StdRBI},
		kind: kindRegex,
		patterns: []string{
			`(?i)\bdebug\s*[:=]{1,2}\s*True\b`,
		},
		description: "Debug mode enabled",
		remediation: "Disable debug mode outside development environments.",
	},
}

// buildCatalog compiles the builtin table into rules. A bad pattern is a
// configuration fault surfaced at load time.
func buildCatalog() ([]Rule, error) {
	out := make([]Rule, 0, len(builtinDefs))
	for _, def := range builtinDefs {
		var (
			m   matcher.Matcher
			err error
		)
		switch def.kind {
		case kindRegex:
			m, err = matcher.NewRegex(def.patterns...)
		case kindCardNumber:
			m = matcher.NewCardNumber()
		case kindCVVProximity:
			m = matcher.NewCVVProximity()
		case kindEntropy:
			m = matcher.NewEntropy(0)
		default:
			err = fmt.Errorf("unknown matcher kind %d", def.kind)
		}
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", def.id, err)
		}
		out = append(out, Rule{
			ID:          def.id,
			Category:    def.category,
			Severity:    def.severity,
			Standards:   def.standards,
			Description: def.description,
			Remediation: def.remediation,
			Sensitive:   def.sensitive,
			Matcher:     m,
		})
	}
	return out, nil
}

// Builtin returns a registry holding the builtin catalog.
func Builtin() (*Registry, error) {
	rules, err := buildCatalog()
	if err != nil {
		return nil, err
	}
	return NewRegistry(rules)
}

// BuiltinWithPacks returns the builtin catalog extended with regex rule
// packs loaded from dir. An empty dir loads nothing extra.
func BuiltinWithPacks(dir string) (*Registry, error) {
	rules, err := buildCatalog()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		packed, err := LoadPacks(dir)
		if err != nil {
			return nil, err
		}
		rules = append(rules, packed...)
	}
	return NewRegistry(rules)
}
