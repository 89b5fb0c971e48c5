package file

import (
	"safechain-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		UUID:        fDomain.UUID,
		FileName:    fDomain.FileName,
		ContentType: fDomain.ContentType,
		SizeBytes:   fDomain.SizeBytes,
		OwnerName:   fDomain.OwnerName,
		UploadedAt:  fDomain.UploadedAt,
	}

	return f
}

func ToResponseFiles(fDomain file.Files) Files {
	fs := make(Files, len(fDomain))
	for idx, f := range fDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToResponseShare(sDomain file.Share) Share {
	var s = Share{
		TargetUUID:     sDomain.TargetUUID,
		TargetEmail:    sDomain.TargetEmail,
		TargetFullName: sDomain.TargetFullName,
		GrantedByEmail: sDomain.GrantedByEmail,
		SharedAt:       sDomain.SharedAt,
	}

	return s
}

func ToResponseShares(sDomain file.Shares) Shares {
	ss := make(Shares, len(sDomain))
	for idx, s := range sDomain {
		ss[idx] = ToResponseShare(*s)
	}

	return ss
}
