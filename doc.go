// Overwrite final static fields at runtime
//
// Fields declared with the [static] package can be marked final, which stops
// the ordinary write path from changing them after initialization. Sometimes
// a bootstrap sequence or a test needs to swap the implementation behind one
// of those fields anyway. This package does that by reaching into the field
// metadata with unsafe. You probably shouldn't use it outside of startup code
// and tests.
//
// Two mechanisms are tried, in order, the first time [Inject] is called:
//   - Modifier patch: clear the final bit on the field, write through
//     [static.Field.Set] and put the bit back.
//   - Raw write: find the storage of the field and copy the value straight
//     into it with the runtime's typed memory move.
//
// Either one can be compiled out with the implinject_nomodifiers and
// implinject_norawwrite build tags. With both tags every call fails with
// [ErrUnsupportedEnvironment].
//
// Limitations:
//   - Relies on the unexported layout of [static.Field] and on an internal
//     runtime function
//   - Not safe to call while anything else reads or writes the same field
//   - The raw write doesn't record the assignment, so [static.Var.Init] can
//     still succeed afterwards
package implinject
