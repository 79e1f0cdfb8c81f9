// Package types defines the entity graph produced by the card-file decoders,
// the collaborator interfaces the core talks to (persistence, mask, raster
// codec), the configuration record, and the standard error taxonomy.
//
// The graph is a strict tree: Network owns its Connections, SuperJunctions
// and SuperLinks; a SuperLink owns its SuperNodes and Pipes; a Dataset owns
// its TimeStepRasters. Collections are plain slices and their order is the
// order the records appeared in the source file.
package types
