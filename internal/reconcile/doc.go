package reconcile

// Protocol: read snapshot row 0 and call Init with it; read message 0
// and discard it without applying; then for each subsequent message,
// apply it to the Book first, read the next snapshot row, and call
// Reconcile with that row. LOBSTER's first message describes the
// transition into the first snapshot, so the snapshot already
// incorporates it; applying message 0 again would double-count it.
