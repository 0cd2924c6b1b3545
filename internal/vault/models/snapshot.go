package models

// CryptoAsset is a held currency position shown in the vault.
type CryptoAsset struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Value  string `json:"value"`
}

// SavedPassword is a stored site credential. The password field carries the
// masked display form; the gate never needs the cleartext.
type SavedPassword struct {
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Document is a stored file reference.
type Document struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
}

// Snapshot is the protected payload served once the access code gate has
// been passed. Read-mostly; its internal structure is opaque to the gate.
type Snapshot struct {
	CryptoAssets []CryptoAsset   `json:"crypto_assets"`
	Passwords    []SavedPassword `json:"passwords"`
	Documents    []Document      `json:"documents"`
}
