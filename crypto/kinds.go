package crypto

// Kind is implemented by the credential kind markers. It is sealed: key
// pairs, credentials and proofs of one kind never type-check as another.
type Kind interface {
	numAttrs() int
	system() *SystemParams
}

type Auth struct{}

type ProfileKey struct{}

type ProfileKeyV3 struct{}

type Pni struct{}

type Receipt struct{}

func (Auth) numAttrs() int         { return 3 }
func (ProfileKey) numAttrs() int   { return 4 }
func (ProfileKeyV3) numAttrs() int { return 4 }
func (Pni) numAttrs() int          { return 6 }
func (Receipt) numAttrs() int      { return 2 }

func (Auth) system() *SystemParams         { return CredentialsSystemParams() }
func (ProfileKey) system() *SystemParams   { return CredentialsSystemParams() }
func (ProfileKeyV3) system() *SystemParams { return CredentialsV3SystemParams() }
func (Pni) system() *SystemParams          { return CredentialsSystemParams() }
func (Receipt) system() *SystemParams      { return CredentialsSystemParams() }

func numAttrs[K Kind]() int {
	var k K
	return k.numAttrs()
}

func systemParams[K Kind]() *SystemParams {
	var k K
	return k.system()
}
