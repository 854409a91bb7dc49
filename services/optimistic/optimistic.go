// Package optimistic implements the mutation pattern the app applies for
// instant feedback: mutate the local view first, run the remote call, and
// roll the view back if the call fails. Success needs no further action —
// the optimistic state is the final state.
package optimistic

// Apply runs one optimistic mutation against *state.
//
// clone must produce an independent copy deep enough that mutate cannot
// reach the snapshot through shared references. mutate applies the local
// change; commit performs the remote call. On commit failure the snapshot
// is restored and the error returned, so the caller can surface it.
func Apply[T any](state *T, clone func(T) T, mutate func(*T), commit func() error) error {
	snapshot := clone(*state)
	mutate(state)
	if err := commit(); err != nil {
		*state = snapshot
		return err
	}
	return nil
}
