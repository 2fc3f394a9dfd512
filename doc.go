// Package tachograph decodes European digital tachograph driver-card
// download files (Generation 1, Generation 2, and Generation 2.2) and
// evaluates the resulting activity timeline against the EU Reg. 561/2006
// driving-time and rest rules.
//
// Decode turns a raw .ddd byte sequence into a File, reconstructing the
// driver's activity timeline from the decoded daily records into
// File.Activities, and Evaluate runs the compliance rules over that
// timeline. Signature verification is a pluggable collaborator (see the
// SignatureVerifier interface) rather than something this package
// does itself: certificate-chain walking to an ERCA root is out of
// scope.
package tachograph
