// Package prepare stages everything python-semantic-release needs before
// a release run: it reconciles addon metadata, writes context JSON under
// .psr_context/, and copies the bundled template set into the consumer
// repository's templates directory.
package prepare
