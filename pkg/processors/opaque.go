package processors

func (p *Processors) opaque(src, dest string) error {
	return p.fs.CopyFile(src, dest)
}
