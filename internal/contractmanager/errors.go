package contractmanager

import "errors"

// ErrOrphanedAgreement marks an agreement that exists on-chain but whose
// relational record could not be completed. The chain state is authoritative
// and unaffected; the row needs reconciliation.
var ErrOrphanedAgreement = errors.New("agreement confirmed on-chain but store record incomplete")
