package classfile

type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        ModuleFlags
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
	Uses               []uint16
	Provides           []ModuleProvides
}

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        ModuleFlags
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   ModuleFlags
	ExportsToIndex []uint16
}

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   ModuleFlags
	OpensToIndex []uint16
}

type ModuleProvides struct {
	ProvidesIndex     uint16
	ProvidesWithIndex []uint16
}

type ModulePackagesAttribute struct {
	PackageIndex []uint16
}

type ModuleMainClassAttribute struct {
	MainClassIndex uint16
}

func (d *decoder) readModule(r *reader, depth int) Attribute {
	m := &ModuleAttribute{
		ModuleNameIndex:    r.readU2(),
		ModuleFlags:        ModuleFlags(r.readU2()),
		ModuleVersionIndex: r.readU2(),
	}

	n := r.readU2()
	for i := uint16(0); i < n && r.err == nil; i++ {
		m.Requires = append(m.Requires, ModuleRequires{
			RequiresIndex:        r.readU2(),
			RequiresFlags:        ModuleFlags(r.readU2()),
			RequiresVersionIndex: r.readU2(),
		})
	}

	n = r.readU2()
	for i := uint16(0); i < n && r.err == nil; i++ {
		e := ModuleExports{
			ExportsIndex: r.readU2(),
			ExportsFlags: ModuleFlags(r.readU2()),
		}
		e.ExportsToIndex = r.readU2s(int(r.readU2()))
		m.Exports = append(m.Exports, e)
	}

	n = r.readU2()
	for i := uint16(0); i < n && r.err == nil; i++ {
		o := ModuleOpens{
			OpensIndex: r.readU2(),
			OpensFlags: ModuleFlags(r.readU2()),
		}
		o.OpensToIndex = r.readU2s(int(r.readU2()))
		m.Opens = append(m.Opens, o)
	}

	m.Uses = r.readU2s(int(r.readU2()))

	n = r.readU2()
	for i := uint16(0); i < n && r.err == nil; i++ {
		p := ModuleProvides{ProvidesIndex: r.readU2()}
		p.ProvidesWithIndex = r.readU2s(int(r.readU2()))
		m.Provides = append(m.Provides, p)
	}
	return m
}
