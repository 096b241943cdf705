package types

import "fmt"

// PostinstallKind names a postinstall step kind by its recipe node name.
type PostinstallKind string

const (
	KindCopy       PostinstallKind = "cp"
	KindDownload   PostinstallKind = "dl"
	KindAppend     PostinstallKind = "echo"
	KindRunCommand PostinstallKind = "fish"
)

// Postinstall is one action run after a formula installs.
// The set of implementations is closed: Copy, Download, Append and RunCommand.
//
// Path fields hold already expanded paths; a leading ~ never reaches here.
type Postinstall interface {
	Kind() PostinstallKind
	String() string

	postinstall()
}

// Copy copies Source (relative to the recipe directory) into Destination.
type Copy struct {
	Source      string
	Destination string
}

// Download fetches URL and writes it to Destination.
type Download struct {
	URL         string
	Destination string
}

// Append appends Text and a newline to the existing file at Destination.
type Append struct {
	Text        string
	Destination string
}

// RunCommand runs Command as a single shell command line.
type RunCommand struct {
	Command string
}

func (Copy) Kind() PostinstallKind       { return KindCopy }
func (Download) Kind() PostinstallKind   { return KindDownload }
func (Append) Kind() PostinstallKind     { return KindAppend }
func (RunCommand) Kind() PostinstallKind { return KindRunCommand }

func (s Copy) String() string       { return fmt.Sprintf("cp %s %s", s.Source, s.Destination) }
func (s Download) String() string   { return fmt.Sprintf("dl %s %s", s.URL, s.Destination) }
func (s Append) String() string     { return fmt.Sprintf("echo %q %s", s.Text, s.Destination) }
func (s RunCommand) String() string { return fmt.Sprintf("fish %q", s.Command) }

func (Copy) postinstall()       {}
func (Download) postinstall()   {}
func (Append) postinstall()     {}
func (RunCommand) postinstall() {}

// Compile-time checks
var (
	_ Postinstall = Copy{}
	_ Postinstall = Download{}
	_ Postinstall = Append{}
	_ Postinstall = RunCommand{}
)
