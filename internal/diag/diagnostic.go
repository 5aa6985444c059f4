package diag

// Diagnostic is one reported failure or note. Primary anchors it to the
// managed class (and, where applicable, member) that produced it, since
// this core has no source positions to point at.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Class    string
	Member   string
}

// New constructs a Diagnostic anchored to class (member may be empty).
func New(sev Severity, code Code, class, member, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Class: class, Member: member, Message: msg}
}

func Errorf(code Code, class, member, msg string) Diagnostic {
	return New(SevError, code, class, member, msg)
}

func Fatalf(code Code, class, member, msg string) Diagnostic {
	return New(SevFatal, code, class, member, msg)
}

func (d Diagnostic) String() string {
	if d.Member != "" {
		return d.Severity.String() + " [" + d.Code.String() + "] " + d.Class + "#" + d.Member + ": " + d.Message
	}
	if d.Class != "" {
		return d.Severity.String() + " [" + d.Code.String() + "] " + d.Class + ": " + d.Message
	}
	return d.Severity.String() + " [" + d.Code.String() + "] " + d.Message
}
