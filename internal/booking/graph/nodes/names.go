package nodes

// Node names used when wiring the turn graph.
const (
	NodeExtractor     = "extractor"
	NodeGreeter       = "greeter"
	NodeInfoCollector = "info_collector"
	NodeSlotSelector  = "slot_selector"
	NodeConfirmer     = "confirmer"
	NodePersist       = "persist"
)
