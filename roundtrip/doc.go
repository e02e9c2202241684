// Package roundtrip keeps key documentation alive across YAML
// read-modify-write cycles.
//
// A value store only persists keys and values, so its serialization has no
// comments. The [Processor] bridges the gap with a line-level pass over the
// text:
//
//   - [Processor.Load] strips comment blocks from documented text and
//     reports them per key path as a [Harvest], alongside the body to hand
//     to the value store and the file header.
//   - [Processor.Save] takes the value store's own serialization and puts
//     every stored comment block back in front of the key it documents,
//     indented to the key's depth.
//
// Paths are derived from indentation: a mapping line at depth d has the path
// formed by the last key seen at each depth from 0 to d. The indent width
// must therefore match the one the value store serializes with.
//
//	p, err := roundtrip.New(roundtrip.WithIndent(2))
//	if err != nil {
//		return err
//	}
//
//	h, err := p.Load(text)
//	// Parse h.Body, then commit h.Docs to a documentation store.
//
//	out, err := p.Save(docs, serialized)
package roundtrip
