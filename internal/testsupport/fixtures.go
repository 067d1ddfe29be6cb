package testsupport

// Config file contents shared by registry and CLI tests.
const (
	NoRegistries = `
[cargo-new]
# By default ` + "`cargo new`" + ` will initialize a new Git repository.
vcs = "none"
`

	OneRegistry = NoRegistries + `
[registries]
my-reg = "http://my-reg.local/"
`

	TwoRegistries = OneRegistry + `my-reg33 = "http://my-reg.local/"
`
)
