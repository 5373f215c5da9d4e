// Package transition implements the shift-reduce transition system that
// builds an annotation graph one action at a time, and the finalizer that
// turns a finished configuration into a [dag.Passage].
//
// # Configurations
//
// A [Configuration] holds a stack, a buffer and every transient [Node]
// created so far. It starts with one buffer node per token, created by
// [NewConfiguration] from tokenized paragraphs or by
// [NewTrainingConfiguration] from the terminals of a gold passage. An
// external driver applies actions with [Configuration.Apply] until FINISH:
//
//	c, _ := transition.NewConfiguration([][]string{{"Hi"}}, "p1")
//	for _, a := range []transition.Action{
//	    transition.NodeAction("C"), transition.RootAction("H"),
//	    transition.Shift, transition.Finish,
//	} {
//	    if _, err := c.Apply(a); err != nil {
//	        return err
//	    }
//	}
//	p, err := transition.Finalize(c)
//
// Every action checks its precondition before changing anything. A failed
// precondition is a MALFORMED_TRANSITION error and is fatal for the
// passage; the transition system does not recover from malformed streams.
//
// # Finalizing
//
// [Finalizer.Finalize] orders the transient nodes by level so every parent
// is materialized before its children, creates the terminal layer through a
// [TerminalBuilder], and builds the foundational layer on top of it. Remote
// edges and linkage nodes are handled after the primary pass.
package transition
