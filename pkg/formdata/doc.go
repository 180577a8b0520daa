// Package formdata defines the submission records that templates and
// attachment bindings read from.
//
// Form answers are kept in an insertion-ordered map of tagged scalar values
// instead of a map[string]any, so that iteration is deterministic and
// "last write wins" has a well-defined meaning when two labels normalize to
// the same variable name.
//
// # Values
//
// A Value is one of a small set of kinds. The zero Value is Undefined and is
// the only kind treated as missing:
//
//	formdata.String("Acme")     // "Acme"
//	formdata.Int(42)            // "42"
//	formdata.Number(19.5)       // "19.5"
//	formdata.Bool(true)         // "true"
//	formdata.List("a", "b")     // "a,b"
//	formdata.Null()             // ""
//	formdata.Value{}            // undefined, never substituted
//
// # Submissions
//
// Submission mirrors the JSON stored by the form service:
//
//	{
//	  "clientName": "Acme",
//	  "clientEmail": "billing@acme.test",
//	  "formName": "Website brief",
//	  "formValues": {
//	    "q1": {"label": "Budget (USD)", "value": 5000},
//	    "q2": {"label": "Deadline", "value": "2026-11-01"}
//	  }
//	}
//
// Decoding preserves the order of "formValues" keys.
package formdata
