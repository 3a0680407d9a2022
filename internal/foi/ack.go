package foi

import "fmt"

const ackBodyTemplate = `Dear Sir or Madam,

Thank you for your request for information.

Your request has been logged under the reference number %s.
Please quote this reference in any future correspondence.

We will respond within 20 working days in accordance with the
Freedom of Information Act 2000.

Kind Regards,

Information Rights Team
London Borough of Camden
`

// AckSubject returns the acknowledgement draft subject for a case reference.
func AckSubject(ref string) string {
	return fmt.Sprintf("Freedom of Information request – %s", ref)
}

// AckBody returns the acknowledgement draft body for a case reference.
// Plain template substitution, always succeeds.
func AckBody(ref string) string {
	return fmt.Sprintf(ackBodyTemplate, ref)
}
